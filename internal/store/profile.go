package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/academy/internal/learner"
)

const activeLearnerKey = "active_learner"

// profileRepo implements ProfileRepo. Each row carries the whole profile as
// a JSON document next to a few indexed columns.
type profileRepo struct {
	s *Store
}

func (r *profileRepo) Upsert(ctx context.Context, p learner.Profile) (learner.Profile, error) {
	if p.ID == "" {
		return learner.Profile{}, fmt.Errorf("upsert profile: empty id")
	}
	p = p.Clone()
	p.UpdatedAt = r.s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}

	data, err := json.Marshal(p)
	if err != nil {
		return learner.Profile{}, fmt.Errorf("encode profile: %w", err)
	}

	query, args := builder().Insert(ProfilesTable.Name).
		Columns("id", "email", "name", "role", "xp", "updated_at", "data").
		Values(p.ID, normalizeEmail(p.Email), p.Name, string(p.Role), p.XP, formatTime(p.UpdatedAt), string(data)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return learner.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Get(ctx context.Context, id string) (learner.Profile, error) {
	query, args := builder().Select("data").
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	return r.scanOne(ctx, query, args)
}

func (r *profileRepo) FindByEmail(ctx context.Context, email string) (learner.Profile, error) {
	query, args := builder().Select("data").
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("email", normalizeEmail(email))).
		OrderBy(entsql.Asc("updated_at")).
		Limit(1).
		Query()
	return r.scanOne(ctx, query, args)
}

func (r *profileRepo) List(ctx context.Context) ([]learner.Profile, error) {
	query, args := builder().Select("data").
		From(entsql.Table(ProfilesTable.Name)).
		OrderBy(entsql.Desc("xp"), entsql.Asc("name")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []learner.Profile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p, err := decodeProfile(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profileRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(ProfilesTable.Name)).
		Query()
	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	return r.deleteWhere(ctx, func(col string) *entsql.Predicate { return entsql.EQ(col, id) }, id)
}

func (r *profileRepo) DeleteAll(ctx context.Context) error {
	return r.deleteWhere(ctx, nil, "")
}

// deleteWhere removes profiles plus their transcripts and attempts in one
// transaction. A nil pred deletes everything. The active pointer is cleared
// when it points at a removed learner.
func (r *profileRepo) deleteWhere(ctx context.Context, pred func(col string) *entsql.Predicate, id string) error {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	targets := []struct{ table, col string }{
		{ChatEntriesTable.Name, "learner_id"},
		{AttemptsTable.Name, "learner_id"},
		{ProfilesTable.Name, "id"},
	}
	for _, tg := range targets {
		del := builder().Delete(tg.table)
		if pred != nil {
			del = del.Where(pred(tg.col))
		}
		query, args := del.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete from %s: %w", tg.table, err)
		}
	}

	active := entsql.EQ("key", activeLearnerKey)
	if id != "" {
		active = entsql.And(active, entsql.EQ("value", id))
	}
	query, args := builder().Delete(KvTable.Name).Where(active).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear active learner: %w", err)
	}

	return tx.Commit()
}

func (r *profileRepo) SetActive(ctx context.Context, id string) error {
	kv := r.s.KV()
	if id == "" {
		return kv.Delete(ctx, activeLearnerKey)
	}
	return kv.Set(ctx, activeLearnerKey, id, 0)
}

func (r *profileRepo) Active(ctx context.Context) (string, error) {
	id, err := r.s.KV().Get(ctx, activeLearnerKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return id, err
}

func (r *profileRepo) scanOne(ctx context.Context, query string, args []any) (learner.Profile, error) {
	var data string
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return learner.Profile{}, ErrNotFound
	}
	if err != nil {
		return learner.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return decodeProfile(data)
}

func decodeProfile(data string) (learner.Profile, error) {
	var p learner.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return learner.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
