package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/hr"
)

// Store keeps every collection in process memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[hr.Entity][]hr.Record
	now     func() time.Time
	newID   func() string
	latency time.Duration
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDs(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLatency delays every call, simulating a remote round trip.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.latency = d
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		records: map[hr.Entity][]hr.Record{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded returns a store preloaded with the demo dataset.
func NewSeeded(opts ...Option) *Store {
	s := New(opts...)
	s.Load(hr.Dataset(s.now(), s.newID))
	return s
}

// Load replaces the named collections.
func (s *Store) Load(data map[hr.Entity][]hr.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for e, rows := range data {
		copied := make([]hr.Record, 0, len(rows))
		for _, row := range rows {
			copied = append(copied, row.Clone())
		}
		s.records[e] = copied
	}
}

func (s *Store) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.records[e]
	out := make([]hr.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, e hr.Entity, id string) (hr.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(e, id)
	if idx < 0 {
		return nil, hr.NotFound(e)
	}
	return s.records[e][idx].Clone(), nil
}

func (s *Store) Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	rec := payload.Clone()
	rec[e.IDField()] = s.newID()
	rec["createdAt"] = hr.Stamp(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := hr.ResolveJoins(ctx, e, rec, s.lookupLocked); err != nil {
		return nil, err
	}
	s.records[e] = append(s.records[e], rec)
	return rec.Clone(), nil
}

func (s *Store) Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(e, id)
	if idx < 0 {
		return nil, hr.NotFound(e)
	}
	rec := s.records[e][idx].Merge(payload)
	rec[e.IDField()] = id
	rec["updatedAt"] = hr.Stamp(s.now())
	if err := hr.ResolveJoins(ctx, e, rec, s.lookupLocked); err != nil {
		return nil, err
	}
	s.records[e][idx] = rec
	return rec.Clone(), nil
}

// Delete of an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, e hr.Entity, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(e, id)
	if idx < 0 {
		return nil
	}
	rows := s.records[e]
	s.records[e] = append(rows[:idx:idx], rows[idx+1:]...)
	return nil
}

func (s *Store) lookupLocked(_ context.Context, e hr.Entity, id string) (hr.Record, error) {
	idx := s.indexOf(e, id)
	if idx < 0 {
		return nil, hr.NotFound(e)
	}
	return s.records[e][idx], nil
}

func (s *Store) indexOf(e hr.Entity, id string) int {
	for i, row := range s.records[e] {
		if row.ID(e) == id {
			return i
		}
	}
	return -1
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
