// Package instrumented times every data layer call.
package instrumented

import (
	"context"
	"time"

	"hrms/internal/domain/hr"
)

// Observer receives one observation per call.
type Observer interface {
	ObserveData(op, entity string, d time.Duration, err error)
}

type Store struct {
	next hr.Store
	obs  Observer
	now  func() time.Time
}

func New(next hr.Store, obs Observer) *Store {
	return &Store{next: next, obs: obs, now: time.Now}
}

func (s *Store) observe(op string, e hr.Entity, start time.Time, err error) {
	s.obs.ObserveData(op, string(e), s.now().Sub(start), err)
}

func (s *Store) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	start := s.now()
	rows, err := s.next.List(ctx, e)
	s.observe("list", e, start, err)
	return rows, err
}

func (s *Store) Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error) {
	start := s.now()
	rec, err := s.next.Create(ctx, e, payload)
	s.observe("create", e, start, err)
	return rec, err
}

func (s *Store) Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error) {
	start := s.now()
	rec, err := s.next.Update(ctx, e, id, payload)
	s.observe("update", e, start, err)
	return rec, err
}

func (s *Store) Delete(ctx context.Context, e hr.Entity, id string) error {
	start := s.now()
	err := s.next.Delete(ctx, e, id)
	s.observe("delete", e, start, err)
	return err
}
