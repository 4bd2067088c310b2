// Package api writes the JSON envelope served by the operational endpoints.
package api

import (
	"encoding/json"
	"net/http"

	"hrms/internal/platform/logging"
	"hrms/internal/requestctx"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every JSON body; exactly one of Data and Error is set.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Respond writes a successful envelope carrying data.
func Respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, r, status, Envelope{Success: true, Data: data})
}

// Problem writes a failed envelope.
func Problem(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, Envelope{Error: &Error{Code: code, Message: message}})
}

func write(w http.ResponseWriter, r *http.Request, status int, body Envelope) {
	body.RequestID = requestctx.ID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("write json failed")
	}
}
