package instrumented

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/hr"
	"hrms/internal/store/memory"
)

type observation struct {
	op, entity string
	failed     bool
}

type recorder struct {
	seen []observation
}

func (r *recorder) ObserveData(op, entity string, _ time.Duration, err error) {
	r.seen = append(r.seen, observation{op: op, entity: entity, failed: err != nil})
}

func TestEveryCallIsObserved(t *testing.T) {
	rec := &recorder{}
	s := New(memory.New(), rec)
	ctx := context.Background()

	created, err := s.Create(ctx, hr.Regions, hr.Record{"regionName": "Europe"})
	require.NoError(t, err)
	id := created.ID(hr.Regions)

	_, err = s.List(ctx, hr.Regions)
	require.NoError(t, err)
	_, err = s.Update(ctx, hr.Regions, "missing", hr.Record{})
	require.ErrorIs(t, err, hr.ErrNotFound)
	require.NoError(t, s.Delete(ctx, hr.Regions, id))

	assert.Equal(t, []observation{
		{op: "create", entity: "regions"},
		{op: "list", entity: "regions"},
		{op: "update", entity: "regions", failed: true},
		{op: "delete", entity: "regions"},
	}, rec.seen)
}
