package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/requestctx"
)

func TestEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter, r *http.Request)
		status int
		want   Envelope
	}{
		{
			name:   "success",
			write:  func(w http.ResponseWriter, r *http.Request) { Respond(w, r, http.StatusOK, "ok") },
			status: http.StatusOK,
			want:   Envelope{Success: true, Data: "ok", RequestID: "req-1"},
		},
		{
			name: "failure",
			write: func(w http.ResponseWriter, r *http.Request) {
				Problem(w, r, http.StatusServiceUnavailable, "not_ready", "store unreachable")
			},
			status: http.StatusServiceUnavailable,
			want:   Envelope{Error: &Error{Code: "not_ready", Message: "store unreachable"}, RequestID: "req-1"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req = req.WithContext(requestctx.With(req.Context(), requestctx.Meta{ID: "req-1"}))
			rec := httptest.NewRecorder()
			tc.write(rec, req)
			require.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEnvelopeOutsideRequestHasNoID(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil), http.StatusOK, map[string]string{"status": "ready"})
	assert.NotContains(t, rec.Body.String(), "requestId")
}
