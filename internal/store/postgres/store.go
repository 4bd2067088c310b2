// Package postgres keeps HR records as JSONB documents in a single table.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/hr"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	DB    *pgxpool.Pool
	now   func() time.Time
	newID func() string
}

func New(db *pgxpool.Pool) *Store {
	return &Store{DB: db, now: time.Now, newID: uuid.NewString}
}

func (s *Store) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	rows, err := s.DB.Query(ctx, "SELECT data FROM hr_records WHERE entity = $1 ORDER BY seq", string(e))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []hr.Record{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		rec, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, e hr.Entity, id string) (hr.Record, error) {
	return get(ctx, s.DB, e, id, false)
}

func get(ctx context.Context, q querier, e hr.Entity, id string, lock bool) (hr.Record, error) {
	query := "SELECT data FROM hr_records WHERE entity = $1 AND id = $2"
	if lock {
		query += " FOR UPDATE"
	}
	var raw []byte
	err := q.QueryRow(ctx, query, string(e), id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, hr.NotFound(e)
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func lookupWith(q querier) hr.Lookup {
	return func(ctx context.Context, e hr.Entity, id string) (hr.Record, error) {
		return get(ctx, q, e, id, false)
	}
}

func (s *Store) Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error) {
	rec := payload.Clone()
	id := s.newID()
	now := s.now()
	rec[e.IDField()] = id
	rec["createdAt"] = hr.Stamp(now)
	if err := hr.ResolveJoins(ctx, e, rec, lookupWith(s.DB)); err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	if _, err := s.DB.Exec(ctx,
		"INSERT INTO hr_records (entity, id, data, created_at) VALUES ($1, $2, $3::jsonb, $4)",
		string(e), id, string(data), now); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := get(ctx, tx, e, id, true)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec := current.Merge(payload)
	rec[e.IDField()] = id
	rec["updatedAt"] = hr.Stamp(now)
	if err := hr.ResolveJoins(ctx, e, rec, lookupWith(tx)); err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	if _, err := tx.Exec(ctx,
		"UPDATE hr_records SET data = $3::jsonb, updated_at = $4 WHERE entity = $1 AND id = $2",
		string(e), id, string(data), now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete of an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, e hr.Entity, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM hr_records WHERE entity = $1 AND id = $2", string(e), id)
	return err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM hr_records").Scan(&n)
	return n, err
}

// Load inserts a full dataset in one batch, keeping existing ids untouched.
func (s *Store) Load(ctx context.Context, data map[hr.Entity][]hr.Record) error {
	batch := &pgx.Batch{}
	for _, e := range hr.Entities {
		for _, rec := range data[e] {
			raw, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode %s: %w", e, err)
			}
			batch.Queue(
				"INSERT INTO hr_records (entity, id, data) VALUES ($1, $2, $3::jsonb) ON CONFLICT (entity, id) DO NOTHING",
				string(e), rec.ID(e), string(raw))
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	return s.DB.SendBatch(ctx, batch).Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

func decode(raw []byte) (hr.Record, error) {
	var rec hr.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
