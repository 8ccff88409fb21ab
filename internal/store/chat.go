package store

import (
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/academy/internal/learner"
)

// chatRepo implements ChatRepo. Entries are ordered by the global sequence.
type chatRepo struct {
	s *Store
}

func (r *chatRepo) Append(ctx context.Context, learnerID string, e learner.ChatEntry) error {
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = r.s.now()
	}

	query, args := builder().Insert(ChatEntriesTable.Name).
		Columns("sequence", "learner_id", "role", "text", "created_at").
		Values(seq, learnerID, string(e.Role), e.Text, formatTime(e.Timestamp)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save chat entry: %w", err)
	}
	return nil
}

func (r *chatRepo) History(ctx context.Context, learnerID string, opts QueryOpts) ([]learner.ChatEntry, error) {
	sel := builder().Select("role", "text", "created_at").
		From(entsql.Table(ChatEntriesTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat entries: %w", err)
	}
	defer rows.Close()

	var out []learner.ChatEntry
	for rows.Next() {
		var role, text, at string
		if err := rows.Scan(&role, &text, &at); err != nil {
			return nil, fmt.Errorf("scan chat entry: %w", err)
		}
		out = append(out, learner.ChatEntry{Role: learner.ChatRole(role), Text: text, Timestamp: parseTime(at)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Queried newest first so Limit keeps the tail; return oldest first.
	slices.Reverse(out)
	return out, nil
}

func (r *chatRepo) Clear(ctx context.Context, learnerID string) error {
	query, args := builder().Delete(ChatEntriesTable.Name).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}
