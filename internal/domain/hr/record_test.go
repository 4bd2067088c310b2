package hr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"name":    "Alice",
		"salary":  55000.0,
		"active":  "true",
		"flag":    true,
		"count":   3,
		"hired":   "2021-03-10",
		"checkIn": "2025-01-15T09:05:00Z",
	}

	assert.Equal(t, "55000", rec.String("salary"))
	assert.Equal(t, "3", rec.String("count"))
	assert.Equal(t, "", rec.String("missing"))

	f, ok := rec.Float("salary")
	require.True(t, ok)
	assert.Equal(t, 55000.0, f)
	_, ok = rec.Float("name")
	assert.False(t, ok)

	assert.True(t, rec.Bool("active"))
	assert.True(t, rec.Bool("flag"))
	assert.False(t, rec.Bool("name"))

	hired, ok := rec.Time("hired")
	require.True(t, ok)
	assert.Equal(t, 2021, hired.Year())
	checkIn, ok := rec.Time("checkIn")
	require.True(t, ok)
	assert.Equal(t, 9, checkIn.Hour())
	_, ok = rec.Time("name")
	assert.False(t, ok)
}

func TestMergeLeavesOriginalUntouched(t *testing.T) {
	base := Record{"a": "1", "b": "2"}
	merged := base.Merge(Record{"b": "3"})
	assert.Equal(t, "2", base["b"])
	assert.Equal(t, "3", merged["b"])
	assert.Equal(t, "1", merged["a"])
}

func TestResolveJoins(t *testing.T) {
	employees := map[string]Record{
		"e1": {"employeeId": "e1", "firstName": "Alice", "lastName": "Nguyen"},
	}
	lookup := func(_ context.Context, e Entity, id string) (Record, error) {
		if e == Employees {
			if rec, ok := employees[id]; ok {
				return rec, nil
			}
		}
		return nil, NotFound(e)
	}

	tests := []struct {
		name string
		rec  Record
		want string
		has  bool
	}{
		{name: "resolved", rec: Record{"employeeId": "e1"}, want: "Alice Nguyen", has: true},
		{name: "unknown reference", rec: Record{"employeeId": "zz", "employeeName": "stale"}},
		{name: "empty reference", rec: Record{"employeeId": "", "employeeName": "stale"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, ResolveJoins(context.Background(), Leaves, tc.rec, lookup))
			value, has := tc.rec["employeeName"]
			assert.Equal(t, tc.has, has)
			if tc.has {
				assert.Equal(t, tc.want, value)
			}
		})
	}
}

func TestResolveJoinsPropagatesLookupFailure(t *testing.T) {
	boom := errors.New("boom")
	err := ResolveJoins(context.Background(), Countries, Record{"regionId": "r1"}, func(context.Context, Entity, string) (Record, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestEntityMetadata(t *testing.T) {
	assert.Equal(t, "employeeHistoryId", EmployeeHistory.IDField())
	assert.Equal(t, "Payroll record", Payroll.Singular())
	e, ok := ParseEntity(" Regions ")
	assert.True(t, ok)
	assert.Equal(t, Regions, e)
	_, ok = ParseEntity("widgets")
	assert.False(t, ok)
	for _, e := range Entities {
		assert.NotEmpty(t, e.IDField(), string(e))
	}
}
