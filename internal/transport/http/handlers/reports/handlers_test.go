package reportshandler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/transport/http/views"
)

type sourceFunc func(ctx context.Context, k reports.Kind) ([]hr.Record, error)

func (f sourceFunc) Report(ctx context.Context, k reports.Kind) ([]hr.Record, error) { return f(ctx, k) }

func departments(context.Context, reports.Kind) ([]hr.Record, error) {
	return []hr.Record{
		{"departmentName": "Engineering", "countryName": "Canada", "regionName": "Americas", "totalEmployees": 12.0, "maleCount": 7.0, "malePercentage": 58.33, "femaleCount": 5.0, "femalePercentage": 41.67, "avgYearsService": 3.5},
		{"departmentName": "Finance", "countryName": "France", "regionName": "Europe", "totalEmployees": 4.0, "maleCount": 2.0, "malePercentage": 50.0, "femaleCount": 2.0, "femalePercentage": 50.0, "avgYearsService": 6.0},
	}, nil
}

func serve(t *testing.T, src reports.Source, target string) *httptest.ResponseRecorder {
	t.Helper()
	rv, err := views.New()
	require.NoError(t, err)
	h := NewHandler(rv, src, 10)
	h.Now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestReportPage(t *testing.T) {
	rec := serve(t, sourceFunc(departments), "/reports/department-statistics?q=fin")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Finance")
	assert.NotContains(t, body, "Engineering")
	assert.Contains(t, body, `href="/reports/department-statistics/export/pdf?q=fin"`)
	assert.Contains(t, body, `href="/reports/department-statistics/export/xlsx?q=fin"`)
}

func TestReportAllClear(t *testing.T) {
	rec := serve(t, sourceFunc(func(context.Context, reports.Kind) ([]hr.Record, error) { return nil, nil }), "/reports/expiring-contracts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No contracts are expiring in the next 90 days.")
}

func TestReportUnknownKind(t *testing.T) {
	rec := serve(t, sourceFunc(departments), "/reports/salaries")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestReportLoadFailureOffersRetry(t *testing.T) {
	rec := serve(t, sourceFunc(func(context.Context, reports.Kind) ([]hr.Record, error) {
		return nil, errors.New("backend down")
	}), "/reports/leave-balance?q=ann")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load data. Please try again.")
	assert.Contains(t, rec.Body.String(), `href="/reports/leave-balance?q=ann">Retry</a>`)
}

func TestExport(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		magic       string
	}{
		{format: "pdf", contentType: "application/pdf", magic: "%PDF"},
		{format: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", magic: "PK"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			rec := serve(t, sourceFunc(departments), "/reports/department-statistics/export/"+tc.format+"?sort=totalEmployees&dir=desc")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="department-statistics-2025-06-01.`+tc.format+`"`, rec.Header().Get("Content-Disposition"))
			assert.True(t, len(rec.Body.Bytes()) > len(tc.magic))
			assert.Equal(t, tc.magic, rec.Body.String()[:len(tc.magic)])
		})
	}

	rec := serve(t, sourceFunc(departments), "/reports/department-statistics/export/csv")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
