package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence shared by chat
// entries, attempts and LLM events, so rows in different tables can be
// ordered against each other.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the next sequence number and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo.
type eventRepo struct {
	s *Store
}

var llmEventColumns = []string{
	"sequence", "created_at", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, e LLMEvent) error {
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = r.s.now()
	}

	query, args := builder().Insert(LlmEventsTable.Name).
		Columns(llmEventColumns...).
		Values(seq, formatTime(e.Timestamp), e.Provider, e.Model, e.Purpose,
			e.InputTokens, e.OutputTokens, e.LatencyMs, e.Success,
			e.ErrorMessage, e.RequestBody, e.ResponseBody).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := builder().Select(llmEventColumns...).
		From(entsql.Table(LlmEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, seq int64) (LLMEvent, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(LlmEventsTable.Name)).
		Where(entsql.EQ("sequence", seq)).
		Query()
	e, err := scanLLMEvent(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return LLMEvent{}, ErrNotFound
	}
	return e, err
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT purpose, model, COUNT(*),
			SUM(CASE WHEN success THEN 0 ELSE 1 END),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
			CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_events
		GROUP BY purpose, model
		ORDER BY purpose, model`)
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM events: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Calls, &u.Failures,
			&u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (LLMEvent, error) {
	var (
		e                     LLMEvent
		at                    string
		errMsg, reqBody, resp sql.NullString
	)
	err := row.Scan(&e.Sequence, &at, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&errMsg, &reqBody, &resp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LLMEvent{}, err
		}
		return LLMEvent{}, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = parseTime(at)
	e.ErrorMessage = errMsg.String
	e.RequestBody = reqBody.String
	e.ResponseBody = resp.String
	return e, nil
}
