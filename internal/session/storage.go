package session

import (
	"net/http"
	"sync"
	"time"
)

// Keys of the two durable session slots.
const (
	AuthKey = "hrms_auth"
	UserKey = "hrms_user"
)

// Storage is the durable client-side slot the session persists into.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStorage is a Storage for tests and the CLI.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStorage) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// CookieStorage reads slots from the request and writes changes to the response.
type CookieStorage struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	maxAge time.Duration

	mu      sync.Mutex
	pending map[string]*string
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool, maxAge time.Duration) *CookieStorage {
	return &CookieStorage{w: w, r: r, secure: secure, maxAge: maxAge, pending: map[string]*string{}}
}

func (c *CookieStorage) Get(key string) (string, bool) {
	c.mu.Lock()
	if v, ok := c.pending[key]; ok {
		c.mu.Unlock()
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c.mu.Unlock()
	cookie, err := c.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieStorage) Set(key, value string) {
	c.mu.Lock()
	c.pending[key] = &value
	c.mu.Unlock()
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieStorage) Remove(key string) {
	c.mu.Lock()
	c.pending[key] = nil
	c.mu.Unlock()
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
