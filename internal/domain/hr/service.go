package hr

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hrms/internal/platform/logging"
)

// Service fronts a Store with call timeouts and publishes an invalidation
// on the Bus after every successful mutation.
type Service struct {
	Store   Store
	Bus     *Bus
	Timeout time.Duration
}

func NewService(store Store, bus *Bus, timeout time.Duration) *Service {
	return &Service{Store: store, Bus: bus, Timeout: timeout}
}

func (s *Service) List(ctx context.Context, e Entity) ([]Record, error) {
	if !e.Valid() {
		return nil, ErrUnknownEntity
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.List(ctx, e)
}

func (s *Service) Create(ctx context.Context, e Entity, payload Record) (Record, error) {
	if !e.Valid() {
		return nil, ErrUnknownEntity
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	rec, err := s.Store.Create(ctx, e, payload)
	if err != nil {
		s.logFailure(ctx, "create", e, "", err)
		return nil, err
	}
	s.Bus.Publish(e)
	return rec, nil
}

func (s *Service) Update(ctx context.Context, e Entity, id string, payload Record) (Record, error) {
	if !e.Valid() {
		return nil, ErrUnknownEntity
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	rec, err := s.Store.Update(ctx, e, id, payload)
	if err != nil {
		s.logFailure(ctx, "update", e, id, err)
		return nil, err
	}
	s.Bus.Publish(e)
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, e Entity, id string) error {
	if !e.Valid() {
		return ErrUnknownEntity
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Store.Delete(ctx, e, id); err != nil {
		s.logFailure(ctx, "delete", e, id, err)
		return err
	}
	s.Bus.Publish(e)
	return nil
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *Service) logFailure(ctx context.Context, op string, e Entity, id string, err error) {
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"op":     op,
		"entity": string(e),
		"id":     id,
	}).WithError(err).Warn("record mutation failed")
}
