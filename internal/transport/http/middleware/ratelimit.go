package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hrms/internal/platform/logging"
	"hrms/internal/platform/metrics"
	"hrms/internal/session"
)

const messageTooManyRequests = "Too many requests. Please wait a moment and try again."

// RateLimitKeyFunc names the bucket a request is counted in.
type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*window)

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(w *window) {
		if fn != nil {
			w.key = fn
		}
	}
}

func WithMetrics(m *metrics.Collector) RateLimitOption {
	return func(w *window) {
		w.metrics = m
	}
}

// window is a fixed-window counter per key. Expired keys are swept lazily.
type window struct {
	scope   string
	limit   int
	span    time.Duration
	key     RateLimitKeyFunc
	metrics *metrics.Collector
	now     func() time.Time

	mu        sync.Mutex
	counts    map[string]*count
	nextSweep time.Time
}

type count struct {
	hits  int
	reset time.Time
}

func newWindow(scope string, limit int, span time.Duration, key RateLimitKeyFunc) *window {
	return &window{
		scope:  scope,
		limit:  limit,
		span:   span,
		key:    key,
		now:    time.Now,
		counts: map[string]*count{},
	}
}

// allow counts r and writes the 429 when the key is over its limit.
func (win *window) allow(w http.ResponseWriter, r *http.Request) bool {
	if win.limit <= 0 {
		return true
	}
	key := win.key(r)
	if key == "" {
		key = "ip:" + clientIP(r)
	}

	now := win.now()
	win.mu.Lock()
	if now.After(win.nextSweep) {
		for k, c := range win.counts {
			if now.After(c.reset) {
				delete(win.counts, k)
			}
		}
		win.nextSweep = now.Add(win.span)
	}
	c, ok := win.counts[key]
	if !ok || now.After(c.reset) {
		c = &count{reset: now.Add(win.span)}
		win.counts[key] = c
	}
	c.hits++
	hits, reset := c.hits, c.reset
	win.mu.Unlock()

	retryAfter := ceilSeconds(reset.Sub(now))
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(win.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(win.limit-hits, 0)))
	h.Set("X-RateLimit-Reset", strconv.Itoa(retryAfter))
	if hits <= win.limit {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
	win.metrics.RateLimited(win.scope)
	logging.FromContext(r.Context()).WithFields(logrus.Fields{
		"scope":     win.scope,
		"key":       key,
		"limit":     win.limit,
		"windowSec": int(win.span.Seconds()),
	}).Warn("rate limit exceeded")
	http.Error(w, messageTooManyRequests, http.StatusTooManyRequests)
	return false
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// RateLimit throttles every request per signed-in principal, or per client IP
// for anonymous traffic.
func RateLimit(limit int, span time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	win := newWindow("global", limit, span, principalOrIPKey)
	for _, opt := range opts {
		opt(win)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if win.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type sensitiveScope string

const (
	sensitiveScopeNone  sensitiveScope = ""
	sensitiveScopeAuth  sensitiveScope = "auth"
	sensitiveScopeActor sensitiveScope = "actor"
)

// sensitiveRateScope classifies credential submissions and admin writes.
func sensitiveRateScope(r *http.Request) sensitiveScope {
	if r == nil || r.Method != http.MethodPost {
		return sensitiveScopeNone
	}
	p := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case p == session.LoginPath || p == "/register":
		return sensitiveScopeAuth
	case strings.HasPrefix(p, "/admin/"):
		return sensitiveScopeActor
	default:
		return sensitiveScopeNone
	}
}

// SensitiveMutationRateLimit applies tighter limits to credential submission,
// counted per IP and per submitted email, and to admin writes, counted per
// principal.
func SensitiveMutationRateLimit(baseLimit int, span time.Duration, m *metrics.Collector) func(http.Handler) http.Handler {
	authLimit := max(baseLimit/4, 1)
	rules := map[sensitiveScope][]*window{
		sensitiveScopeAuth: {
			newWindow("auth", authLimit, span, ipKey),
			newWindow("auth", authLimit, span, AuthEmailOrIPKey("email")),
		},
		sensitiveScopeActor: {
			newWindow("admin", max(baseLimit/2, 1), span, principalOrIPKey),
		},
	}
	for _, wins := range rules {
		for _, win := range wins {
			win.metrics = m
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, win := range rules[sensitiveRateScope(r)] {
				if !win.allow(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthEmailOrIPKey keys on a submitted form field, falling back to the client IP.
func AuthEmailOrIPKey(field string) RateLimitKeyFunc {
	if field = strings.TrimSpace(field); field == "" {
		field = "email"
	}
	return func(r *http.Request) string {
		if v := peekFormValue(r, field); v != "" {
			return "email:" + strings.ToLower(v)
		}
		return ipKey(r)
	}
}

func principalOrIPKey(r *http.Request) string {
	if p := session.FromContext(r.Context()).Current(); p != nil && p.Email != "" {
		return "user:" + strings.ToLower(p.Email)
	}
	return ipKey(r)
}

func ipKey(r *http.Request) string {
	return "ip:" + clientIP(r)
}

const maxPeekBytes = 64 << 10

// peekFormValue reads one field of an urlencoded body and puts the body back
// for the handler.
func peekFormValue(r *http.Request, field string) string {
	if r.Body == nil {
		return ""
	}
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(strings.TrimSpace(ct), "application/x-www-form-urlencoded") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if err != nil {
		return ""
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(values.Get(field))
}
