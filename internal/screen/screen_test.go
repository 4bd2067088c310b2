package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/view/status"
	"hrms/internal/view/table"
)

type fakeLister map[hr.Entity][]hr.Record

func (f fakeLister) List(_ context.Context, e hr.Entity) ([]hr.Record, error) {
	return f[e], nil
}

// blockingLister fails one entity and blocks every other until cancelled.
type blockingLister struct {
	fail hr.Entity
	err  error
}

func (b blockingLister) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	if e == b.fail {
		return nil, b.err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

type fakeSource map[reports.Kind][]hr.Record

func (f fakeSource) Report(_ context.Context, k reports.Kind) ([]hr.Record, error) {
	return f[k], nil
}

func TestEveryEntityHasAScreen(t *testing.T) {
	require.Len(t, Entities, len(hr.Entities))
	for _, e := range hr.Entities {
		s, ok := EntityFor(e)
		require.True(t, ok, e)
		assert.Equal(t, e.Singular(), s.Schema.Singular, e)
		assert.Equal(t, "/admin/"+string(e), s.Path())
		assert.NotEmpty(t, s.Columns, e)
		for _, ref := range s.References {
			f, ok := s.Schema.Field(ref.Field)
			require.True(t, ok, "%s references unknown field %s", e, ref.Field)
			assert.Equal(t, "select", f.Kind.String())
		}
	}
}

func TestEveryReportHasAScreen(t *testing.T) {
	require.Len(t, Reports, len(reports.Kinds))
	for _, k := range reports.Kinds {
		r, ok := ReportFor(k)
		require.True(t, ok, k)
		assert.Equal(t, k.Title(), r.Title)
		assert.NotEmpty(t, r.SearchKeys)
		assert.NotEmpty(t, r.exports)
	}
}

func TestLoadResolvesSelectOptions(t *testing.T) {
	src := fakeLister{
		hr.Countries: {{"countryId": "c1", "countryName": "Germany", "regionId": "r1", "regionName": "Europe"}},
		hr.Regions: {
			{"regionId": "r1", "regionName": "Europe"},
			{"regionId": "r2", "regionName": "Asia"},
		},
	}
	s, _ := EntityFor(hr.Countries)

	data, err := s.Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, data.Rows, 1)

	f, ok := data.Schema.Field("regionId")
	require.True(t, ok)
	assert.Equal(t, "Europe", f.Options[0].Label)
	assert.Equal(t, "r2", f.Options[1].Value)

	rec, ok := data.Record("c1")
	require.True(t, ok)
	assert.Equal(t, "Germany", rec["countryName"])

	shared, _ := s.Schema.Field("regionId")
	assert.Empty(t, shared.Options, "declared schema must stay untouched")
}

func TestLoadFailsAsAWhole(t *testing.T) {
	boom := errors.New("regions unavailable")
	s, _ := EntityFor(hr.EmployeeHistory)

	done := make(chan struct{})
	var data EntityData
	var err error
	go func() {
		data, err = s.Load(context.Background(), blockingLister{fail: hr.Positions, err: boom})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load did not cancel the remaining fetches")
	}
	require.ErrorIs(t, err, boom)
	assert.Empty(t, data.Rows)
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := EntityFor(hr.Regions)

	_, err := s.Load(ctx, blockingLister{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDerivedColumns(t *testing.T) {
	src := fakeLister{
		hr.Employees: {
			{"employeeId": "e1", "firstName": "Alice", "lastName": "Moreau", "isActive": true},
			{"employeeId": "e2", "firstName": "Bob", "lastName": "Smith", "isActive": false},
		},
		hr.Attendance: {
			{"attendanceId": "a1", "employeeId": "e1", "checkIn": "2025-03-03T09:00:00Z", "checkOut": "2025-03-03T17:30:00Z"},
			{"attendanceId": "a2", "employeeId": "e1", "checkIn": "2025-03-04T09:00:00Z"},
		},
		hr.Leaves: {
			{"leaveId": "l1", "employeeId": "e1", "leaveType": "sick", "startDate": "2025-03-03", "endDate": "2025-03-05"},
		},
	}

	employees, _ := EntityFor(hr.Employees)
	data, err := employees.Load(context.Background(), src)
	require.NoError(t, err)
	res := table.Apply(data.Rows, employees.Options(0), table.State{Query: "ali"})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice Moreau", res.Rows[0]["fullName"])

	attendance, _ := EntityFor(hr.Attendance)
	data, err = attendance.Load(context.Background(), src)
	require.NoError(t, err)
	hours := attendance.Columns[4]
	assert.Equal(t, "8.50", string(Cell(hours, data.Rows[0])))
	assert.Equal(t, "-", string(Cell(hours, data.Rows[1])))
	assert.Equal(t, "-", string(Cell(attendance.Columns[3], data.Rows[1])))

	leaves, _ := EntityFor(hr.Leaves)
	data, err = leaves.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "3", string(Cell(leaves.Columns[4], data.Rows[0])))
	assert.Contains(t, string(Cell(leaves.Columns[1], data.Rows[0])), "badge-warning")
	assert.Contains(t, string(Cell(leaves.Columns[5], data.Rows[0])), "Pending")
}

func TestCellRendering(t *testing.T) {
	regions, _ := EntityFor(hr.Regions)
	row := table.Row{"regionName": "<Europe>", "isActive": false, "createdAt": "2024-01-15T10:00:00Z"}

	assert.Equal(t, "&lt;Europe&gt;", string(Cell(regions.Columns[0], row)))
	assert.Equal(t, status.BadgeAs("Inactive", status.Success), Cell(regions.Columns[2], row))
	assert.Equal(t, "Jan 15, 2024", string(Cell(regions.Columns[3], row)))

	contracts, _ := EntityFor(hr.Contracts)
	row = table.Row{"contractType": "internship", "salary": 85000.0}
	assert.Contains(t, string(Cell(contracts.Columns[1], row)), "badge-info")
	assert.Equal(t, "No end date", string(Cell(contracts.Columns[3], row)))
	assert.Equal(t, "$85,000.00", string(Cell(contracts.Columns[4], row)))

	history, _ := EntityFor(hr.EmployeeHistory)
	assert.Equal(t, "Current", string(Cell(history.Columns[4], table.Row{"validTo": ""})))
}

func TestReportLoadAndExport(t *testing.T) {
	src := fakeSource{reports.LeaveBalance: {
		{"fullName": "Alice Moreau", "departmentName": "Engineering", "remainingDays": 12.0, "balanceStatus": "OK"},
		{"fullName": "Bob Smith", "departmentName": "Sales", "remainingDays": 2.0, "balanceStatus": "LOW - Less than 3 days"},
		{"fullName": "Carla Diaz", "departmentName": "Engineering", "remainingDays": 0.0, "balanceStatus": "DEPLETED - No days remaining"},
	}}
	r, _ := ReportFor(reports.LeaveBalance)

	data, err := r.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "Leave balance overview for 3 employees", data.Summary)
	assert.Equal(t, []int{1, 1, 1}, []int{data.Cards[0].Value, data.Cards[1].Value, data.Cards[2].Value})

	at := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	sheet := r.Sheet(data.Rows, table.State{Query: "engineering", SortKey: "remainingDays", Dir: table.Asc, Page: 9}, at)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Carla Diaz", sheet.Rows[0]["fullName"])
	assert.Equal(t, "Leave Balance", sheet.Title)
	assert.Equal(t, at, sheet.GeneratedAt)

	badge := r.Columns[len(r.Columns)-1]
	assert.Contains(t, string(Cell(badge, data.Rows[2])), "badge-error")
}

func TestReportSummaries(t *testing.T) {
	for _, r := range Reports {
		data, err := r.Load(context.Background(), fakeSource{})
		require.NoError(t, err)
		assert.True(t, strings.Contains(data.Summary, "0"), fmt.Sprintf("%s: %q", r.Kind, data.Summary))
		assert.Empty(t, data.Rows)
	}
	expiring, _ := ReportFor(reports.ExpiringContracts)
	assert.Equal(t, "No contracts are expiring in the next 90 days.", expiring.AllClear)
}

func TestNewFailure(t *testing.T) {
	f := NewFailure("Regions", errors.New("boom"), "/admin/regions")
	assert.Equal(t, Failure{Title: "Regions", Message: MessageLoadFailed, RetryURL: "/admin/regions"}, f)

	f = NewFailure("Regions", fmt.Errorf("list: %w", context.DeadlineExceeded), "/admin/regions")
	assert.Equal(t, MessageTimedOut, f.Message)
}
