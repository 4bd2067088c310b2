package hr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	fail error
	rows map[Entity][]Record
}

func (f *fakeStore) List(_ context.Context, e Entity) ([]Record, error) {
	return f.rows[e], f.fail
}

func (f *fakeStore) Create(_ context.Context, e Entity, payload Record) (Record, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return payload, nil
}

func (f *fakeStore) Update(_ context.Context, e Entity, id string, payload Record) (Record, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return payload, nil
}

func (f *fakeStore) Delete(_ context.Context, _ Entity, _ string) error {
	return f.fail
}

func TestServicePublishesAfterSuccessfulMutation(t *testing.T) {
	bus := NewBus()
	var seen []Entity
	unsubscribe := bus.Subscribe(func(e Entity) { seen = append(seen, e) })
	defer unsubscribe()

	svc := NewService(&fakeStore{}, bus, time.Second)
	ctx := context.Background()

	_, err := svc.Create(ctx, Regions, Record{"regionName": "Europe"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, Countries, "c1", Record{"countryName": "Spain"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, Leaves, "l1"))

	assert.Equal(t, []Entity{Regions, Countries, Leaves}, seen)
}

func TestServiceDoesNotPublishOnFailure(t *testing.T) {
	bus := NewBus()
	published := false
	bus.Subscribe(func(Entity) { published = true })

	svc := NewService(&fakeStore{fail: errors.New("down")}, bus, 0)
	_, err := svc.Create(context.Background(), Regions, Record{})
	require.Error(t, err)
	require.Error(t, svc.Delete(context.Background(), Regions, "r1"))
	assert.False(t, published)
}

func TestServiceRejectsUnknownEntity(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, 0)
	_, err := svc.List(context.Background(), Entity("widgets"))
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(func(Entity) { calls++ })
	bus.Publish(Regions)
	unsubscribe()
	bus.Publish(Regions)
	assert.Equal(t, 1, calls)
}

func TestDatasetIntegrity(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	data := Dataset(time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC), newID)

	ids := map[Entity]map[string]bool{}
	for e, rows := range data {
		ids[e] = map[string]bool{}
		for _, row := range rows {
			id := row.ID(e)
			require.NotEmpty(t, id, "%s row without id", e)
			require.False(t, ids[e][id], "duplicate id in %s", e)
			ids[e][id] = true
		}
	}

	for e, rows := range data {
		for _, row := range rows {
			for _, join := range e.Joins() {
				ref := row.String(join.Key)
				if ref == "" {
					continue
				}
				assert.True(t, ids[join.Target][ref], "%s.%s references unknown %s", e, join.Key, join.Target)
				assert.NotEmpty(t, row.String(join.Field))
			}
		}
	}

	assert.Len(t, data[Regions], 4)
	assert.Len(t, data[Employees], len(seedEmployees))
	assert.NotEmpty(t, data[Attendance])
}
