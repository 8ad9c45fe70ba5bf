package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableLLMRequestEvents = "llm_request_events"
	tableDeckEvents       = "deck_events"
	tableKV               = "kv"
	tableGlobalSequence   = "global_sequence"
)

// eventColumns returns the leading columns shared by every event table:
// a unique global sequence and a UTC timestamp in unix milliseconds.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}
}

var (
	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "model", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "purpose", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LLMRequestEventsColumns[9]}},
		},
	}

	// DeckEventsColumns holds the columns for the "deck_events" table.
	DeckEventsColumns = append(eventColumns(),
		&schema.Column{Name: "deck_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "topic", Type: field.TypeString},
		&schema.Column{Name: "subject", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "grade", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "language", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "title", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "slide_count", Type: field.TypeInt},
		&schema.Column{Name: "total_minutes", Type: field.TypeInt},
		&schema.Column{Name: "model", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "payload", Type: field.TypeString, Size: 2147483647},
	)
	// DeckEventsTable holds the schema information for the "deck_events" table.
	DeckEventsTable = &schema.Table{
		Name:       tableDeckEvents,
		Columns:    DeckEventsColumns,
		PrimaryKey: []*schema.Column{DeckEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "deckevent_timestamp", Columns: []*schema.Column{DeckEventsColumns[2]}},
			{Name: "deckevent_topic", Columns: []*schema.Column{DeckEventsColumns[4]}},
		},
	}

	// KvColumns holds the columns for the "kv" table.
	KvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "expires_at", Type: field.TypeInt64, Nullable: true},
	}
	// KvTable holds the schema information for the "kv" table.
	KvTable = &schema.Table{
		Name:       tableKV,
		Columns:    KvColumns,
		PrimaryKey: []*schema.Column{KvColumns[0]},
	}

	// GlobalSequenceColumns holds the columns for the "global_sequence" table.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the single-row counter behind event sequences.
	GlobalSequenceTable = &schema.Table{
		Name:       tableGlobalSequence,
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		DeckEventsTable,
		KvTable,
		GlobalSequenceTable,
	}
)

// migrate runs ent's auto-migration for Tables. It only creates tables,
// appends columns and adds indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	drv := entsql.OpenDB(dialect.SQLite, db)
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
