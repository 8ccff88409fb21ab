package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/academy/internal/learner"
)

type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) Record(ctx context.Context, a learner.Attempt) (learner.Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = r.s.now()
	}
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return learner.Attempt{}, err
	}

	query, args := builder().Insert(AttemptsTable.Name).
		Columns("id", "sequence", "learner_id", "kind", "ref_id", "score", "total", "passed", "attempted_at").
		Values(a.ID, seq, a.LearnerID, string(a.Kind), a.RefID, a.Score, a.Total, a.Passed, formatTime(a.AttemptedAt)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return learner.Attempt{}, fmt.Errorf("save attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) ForLearner(ctx context.Context, learnerID string, opts QueryOpts) ([]learner.Attempt, error) {
	return r.query(ctx, entsql.EQ("learner_id", learnerID), opts)
}

func (r *attemptRepo) All(ctx context.Context, opts QueryOpts) ([]learner.Attempt, error) {
	return r.query(ctx, nil, opts)
}

func (r *attemptRepo) query(ctx context.Context, pred *entsql.Predicate, opts QueryOpts) ([]learner.Attempt, error) {
	sel := builder().Select("id", "learner_id", "kind", "ref_id", "score", "total", "passed", "attempted_at").
		From(entsql.Table(AttemptsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if pred != nil {
		sel = sel.Where(pred)
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []learner.Attempt
	for rows.Next() {
		var (
			a        learner.Attempt
			kind, at string
		)
		if err := rows.Scan(&a.ID, &a.LearnerID, &kind, &a.RefID, &a.Score, &a.Total, &a.Passed, &at); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Kind = learner.AttemptKind(kind)
		a.AttemptedAt = parseTime(at)
		out = append(out, a)
	}
	return out, rows.Err()
}
