package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/requestctx"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID records the request metadata, reusing a caller supplied id when it
// is reasonably sized.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		meta := requestctx.Meta{ID: id, ClientIP: remoteIP(r), Started: time.Now()}
		next.ServeHTTP(w, r.WithContext(requestctx.With(r.Context(), meta)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.ID(ctx)
}

// clientIP prefers the address recorded by RequestID.
func clientIP(r *http.Request) string {
	if m, ok := requestctx.From(r.Context()); ok && m.ClientIP != "" {
		return m.ClientIP
	}
	return remoteIP(r)
}

// remoteIP is the first X-Forwarded-For hop, else the peer address.
func remoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
