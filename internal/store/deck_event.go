package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var deckEventColumns = []string{
	"id", "sequence", "timestamp", "deck_id", "topic", "subject", "grade",
	"language", "title", "slide_count", "total_minutes", "model", "payload",
}

func (r *eventRepo) AppendDeckEvent(ctx context.Context, data DeckEventData) error {
	err := r.insertEvent(ctx, tableDeckEvents,
		[]string{
			"deck_id", "topic", "subject", "grade", "language", "title",
			"slide_count", "total_minutes", "model", "payload",
		},
		[]any{
			data.DeckID, data.Topic, data.Subject, data.Grade, data.Language, data.Title,
			data.SlideCount, data.TotalMinutes, data.Model, data.Payload,
		},
	)
	if err != nil {
		return fmt.Errorf("save deck event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDeckEvents(ctx context.Context, opts QueryOpts) ([]DeckEventRecord, error) {
	sel := builder().Select(deckEventColumns...).
		From(entsql.Table(tableDeckEvents)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deck events: %w", err)
	}
	defer rows.Close()

	var out []DeckEventRecord
	for rows.Next() {
		rec, err := scanDeckEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetDeckEvent(ctx context.Context, deckID string) (*DeckEventRecord, error) {
	query, args := builder().Select(deckEventColumns...).
		From(entsql.Table(tableDeckEvents)).
		Where(entsql.EQ("deck_id", deckID)).
		Query()

	rec, err := scanDeckEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanDeckEvent(row rowScanner) (*DeckEventRecord, error) {
	var (
		rec DeckEventRecord
		ts  int64
	)
	err := row.Scan(
		&rec.ID, &rec.Sequence, &ts, &rec.DeckID, &rec.Topic, &rec.Subject, &rec.Grade,
		&rec.Language, &rec.Title, &rec.SlideCount, &rec.TotalMinutes, &rec.Model, &rec.Payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan deck event: %w", err)
	}
	rec.Timestamp = fromMillis(ts)
	return &rec, nil
}
