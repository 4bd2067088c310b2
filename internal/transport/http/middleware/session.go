package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/logging"
	"hrms/internal/session"
)

type SessionConfig struct {
	Codec         *session.Codec
	Authenticator auth.Authenticator
	SecureCookies bool
	TTL           time.Duration
}

// Session hydrates the cookie-backed session for each request and injects it
// into the request context.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storage := session.NewCookieStorage(w, r, cfg.SecureCookies, cfg.TTL)
			s := session.New(storage, cfg.Codec, cfg.Authenticator)
			s.Hydrate(r.Context())

			ctx := session.WithContext(r.Context(), s)
			if p := s.Current(); p != nil {
				entry := logging.FromContext(ctx).WithFields(logrus.Fields{
					"user": p.Email,
					"role": string(p.Role),
				})
				ctx = logging.WithLogger(ctx, entry)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
