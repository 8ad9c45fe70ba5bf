package store

import (
	"context"
	"testing"
	"time"
)

func TestSQLiteKV_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.KV().Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}
}

func TestSQLiteKV_SetOverwrites(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if err := kv.Set(ctx, "usage:2026-10-19", "120", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "usage:2026-10-19", "480", 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := kv.Get(ctx, "usage:2026-10-19")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "480" {
		t.Fatalf("got (%q, %v), want (\"480\", true)", got, ok)
	}
}

func TestSQLiteKV_Expiry(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	kv := &sqliteKV{db: s.DB(), now: func() time.Time { return now }}
	ctx := context.Background()

	if err := kv.Set(ctx, "deck:abc", `{"id":"abc"}`, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, ok, _ := kv.Get(ctx, "deck:abc"); !ok {
		t.Fatal("expected key before expiry")
	}

	now = now.Add(2 * time.Hour)
	if _, ok, err := kv.Get(ctx, "deck:abc"); err != nil || ok {
		t.Fatalf("expected expired key, got ok=%v err=%v", ok, err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expired row not removed, %d rows left", count)
	}
}
