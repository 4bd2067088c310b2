package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/hr"
	"hrms/internal/platform/db"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool, db.Migrations))
	_, err = pool.Exec(ctx, "TRUNCATE hr_records")
	require.NoError(t, err)

	s := New(pool)
	s.now = func() time.Time { return time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestCreateResolvesJoinsAndLists(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	region, err := s.Create(ctx, hr.Regions, hr.Record{"regionName": "Europe", "isActive": true})
	require.NoError(t, err)
	country, err := s.Create(ctx, hr.Countries, hr.Record{"countryName": "Germany", "regionId": region.ID(hr.Regions)})
	require.NoError(t, err)
	assert.Equal(t, "Europe", country["regionName"])
	assert.Equal(t, "2025-03-20T09:00:00Z", country["createdAt"])

	list, err := s.List(ctx, hr.Countries)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, country, list[0])
}

func TestUpdateMergesAndStamps(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, hr.Positions, hr.Record{"positionName": "Analyst", "isActive": true})
	require.NoError(t, err)
	id := rec.ID(hr.Positions)

	updated, err := s.Update(ctx, hr.Positions, id, hr.Record{"positionName": "Senior Analyst"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Analyst", updated["positionName"])
	assert.Equal(t, true, updated["isActive"])
	assert.Equal(t, "2025-03-20T09:00:00Z", updated["updatedAt"])

	_, err = s.Update(ctx, hr.Positions, "missing", hr.Record{})
	assert.ErrorIs(t, err, hr.ErrNotFound)
}

func TestDeleteAndLoad(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	data := hr.Dataset(time.Now(), uuid.NewString)
	require.NoError(t, s.Load(ctx, data))
	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Positive(t, count)

	regions, err := s.List(ctx, hr.Regions)
	require.NoError(t, err)
	require.NotEmpty(t, regions)
	require.NoError(t, s.Delete(ctx, hr.Regions, regions[0].ID(hr.Regions)))
	require.NoError(t, s.Delete(ctx, hr.Regions, "missing"))

	after, err := s.List(ctx, hr.Regions)
	require.NoError(t, err)
	assert.Len(t, after, len(regions)-1)
}
