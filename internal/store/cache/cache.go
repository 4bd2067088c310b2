package cache

import (
	"context"
	"sync"
	"time"

	"hrms/internal/domain/hr"
)

type entry struct {
	rows    []hr.Record
	expires time.Time
}

// Store caches List results per collection in front of another Store.
// A collection is dropped when the bus reports it changed, together with
// every collection that denormalises names from it.
type Store struct {
	next hr.Store
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[hr.Entity]entry
	stop    func()
}

func New(next hr.Store, bus *hr.Bus, ttl time.Duration) *Store {
	s := &Store{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: map[hr.Entity]entry{},
	}
	if bus != nil {
		s.stop = bus.Subscribe(s.Invalidate)
	}
	return s
}

// Close detaches the store from its bus.
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

func (s *Store) Invalidate(e hr.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, e)
	for _, other := range hr.Entities {
		for _, join := range other.Joins() {
			if join.Target == e {
				delete(s.entries, other)
			}
		}
	}
}

func (s *Store) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	s.mu.Lock()
	cached, ok := s.entries[e]
	s.mu.Unlock()
	if ok && s.now().Before(cached.expires) {
		return cloneRows(cached.rows), nil
	}

	rows, err := s.next.List(ctx, e)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.mu.Lock()
		s.entries[e] = entry{rows: cloneRows(rows), expires: s.now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return rows, nil
}

func (s *Store) Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error) {
	return s.next.Create(ctx, e, payload)
}

func (s *Store) Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error) {
	return s.next.Update(ctx, e, id, payload)
}

func (s *Store) Delete(ctx context.Context, e hr.Entity, id string) error {
	return s.next.Delete(ctx, e, id)
}

func cloneRows(rows []hr.Record) []hr.Record {
	out := make([]hr.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	return out
}
