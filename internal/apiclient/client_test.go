package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/platform/crypto"
	"hrms/internal/session"
)

type fixedAuthenticator struct{}

func (fixedAuthenticator) Authenticate(_ context.Context, email, _ string) (auth.Principal, error) {
	return auth.Principal{Email: email, FirstName: "Sarah", RoleLevel: auth.LevelAdmin}, nil
}

func signedIn(t *testing.T) (context.Context, *session.Context, *session.MemoryStorage) {
	t.Helper()
	sealer, err := crypto.New(crypto.DeriveKey("test"))
	require.NoError(t, err)
	store := session.NewMemoryStorage()
	s := session.New(store, session.NewCodec("test", sealer, time.Hour), fixedAuthenticator{})
	_, err = s.Login(context.Background(), "admin@hrms.com", "admin123")
	require.NoError(t, err)
	return session.WithContext(context.Background(), s), s, store
}

func newClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api/", srv.Client())
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/api", nil)
	require.Error(t, err)
}

func TestListSendsStoredCredential(t *testing.T) {
	var gotAuth, gotPath string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]hr.Record{{"regionId": "r1", "regionName": "Europe"}})
	}))
	ctx, _, _ := signedIn(t)

	rows, err := c.List(ctx, hr.Regions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Europe", rows[0]["regionName"])
	assert.Equal(t, "/api/regions", gotPath)
	assert.Equal(t, "Basic "+auth.BasicToken("admin@hrms.com", "admin123"), gotAuth)
}

func TestMutationsUseEntityPaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var body hr.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body["regionId"] = "r9"
		_ = json.NewEncoder(w).Encode(body)
	}))
	ctx, _, _ := signedIn(t)

	created, err := c.Create(ctx, hr.Regions, hr.Record{"regionName": "Asia"})
	require.NoError(t, err)
	assert.Equal(t, "r9", created["regionId"])

	updated, err := c.Update(ctx, hr.Regions, "r9", hr.Record{"regionName": "APAC"})
	require.NoError(t, err)
	assert.Equal(t, "APAC", updated["regionName"])

	require.NoError(t, c.Delete(ctx, hr.Regions, "r9"))

	assert.Equal(t, []call{
		{http.MethodPost, "/api/regions"},
		{http.MethodPut, "/api/regions/r9"},
		{http.MethodDelete, "/api/regions/r9"},
	}, calls)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		signOut bool
	}{
		{name: "unauthorized signs out", status: http.StatusUnauthorized, wantErr: ErrAuthorizationExpired, signOut: true},
		{name: "forbidden keeps session", status: http.StatusForbidden, wantErr: ErrAuthorizationInsufficient},
		{name: "not found", status: http.StatusNotFound, wantErr: hr.ErrNotFound},
		{name: "bad request is rejected", status: http.StatusBadRequest, body: `{"message":"regionName is required"}`, wantErr: ErrRejected},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			ctx, s, store := signedIn(t)

			_, err := c.Update(ctx, hr.Regions, "r1", hr.Record{})
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, !tc.signOut, s.IsAuthenticated())
			_, hasAuth := store.Get(session.AuthKey)
			assert.Equal(t, !tc.signOut, hasAuth)
		})
	}
}

func TestRejectedMessageIsSurfaced(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"regionName is required"}`))
	}))
	ctx, _, _ := signedIn(t)

	_, err := c.Create(ctx, hr.Regions, hr.Record{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "regionName is required", se.Message)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	ctx, _, _ := signedIn(t)
	require.NoError(t, c.Delete(ctx, hr.Regions, "missing"))
}

func TestReport(t *testing.T) {
	var gotPath string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"departmentName":"Engineering","totalEmployees":3}]`))
	}))
	ctx, _, _ := signedIn(t)

	rows, err := c.Report(ctx, reports.DepartmentStatistics)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.0, rows[0]["totalEmployees"])
	assert.Equal(t, "/api/reports/department-statistics", gotPath)

	_, err = c.Report(ctx, reports.Kind("payroll-forecast"))
	require.ErrorIs(t, err, reports.ErrUnknownReport)
}

func TestAuthenticate(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if r.URL.Path != "/api/auth/login" || req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(auth.Principal{Email: req.Email, FirstName: "Sarah", RoleLevel: 1})
	}))

	p, err := c.Authenticate(context.Background(), " Admin@HRMS.com ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin@hrms.com", p.Email)
	assert.Equal(t, auth.RoleAdmin, p.Role)

	_, err = c.Authenticate(context.Background(), "admin@hrms.com", "nope")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCancelledContext(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	ctx, _, _ := signedIn(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := c.List(ctx, hr.Regions)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "created", status: http.StatusCreated},
		{name: "email taken", status: http.StatusConflict, wantErr: auth.ErrEmailTaken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got auth.Registration
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/register", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(auth.Principal{FirstName: got.FirstName, Email: got.Email, RoleLevel: auth.LevelNone})
			}))

			p, err := c.Register(context.Background(), auth.Registration{FirstName: "Dana", Email: " Dana@Example.com ", Password: "Secret123"})
			assert.Equal(t, "dana@example.com", got.Email)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, auth.RoleNone, p.Role)
		})
	}
}
