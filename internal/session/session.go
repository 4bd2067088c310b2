package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/logging"
)

// State of the session lifecycle. A session starts Loading and settles once hydrated.
type State int

const (
	Loading State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Context is the injected per-client session: it owns the principal and both storage slots.
type Context struct {
	storage Storage
	codec   *Codec
	authn   auth.Authenticator

	mu        sync.RWMutex
	state     State
	principal *auth.Principal
}

func New(storage Storage, codec *Codec, authn auth.Authenticator) *Context {
	return &Context{storage: storage, codec: codec, authn: authn, state: Loading}
}

// Hydrate restores the session from storage. Slots that cannot be decoded are cleared.
func (c *Context) Hydrate(ctx context.Context) State {
	rawUser, hasUser := c.storage.Get(UserKey)
	rawAuth, hasAuth := c.storage.Get(AuthKey)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.principal = nil
	c.state = Anonymous
	if !hasUser && !hasAuth {
		return c.state
	}
	if !hasUser || !hasAuth {
		c.clearLocked()
		return c.state
	}
	principal, err := c.codec.DecodePrincipal(rawUser)
	if err == nil {
		_, err = c.codec.OpenCredential(rawAuth)
	}
	if err != nil {
		logging.FromContext(ctx).WithError(err).Info("discarding unreadable session")
		c.clearLocked()
		return c.state
	}
	c.principal = &principal
	c.state = Authenticated
	return c.state
}

// Login authenticates and, on success, persists both slots together.
// A principal with role level -1 yields ErrAccessDenied and nothing is stored.
func (c *Context) Login(ctx context.Context, email, password string) (auth.Principal, error) {
	c.mu.Lock()
	previous := c.state
	c.state = Loading
	c.mu.Unlock()

	principal, err := c.login(ctx, email, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = previous
		if c.state == Loading {
			c.state = Anonymous
		}
		return auth.Principal{}, err
	}
	c.principal = &principal
	c.state = Authenticated
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"email": principal.Email,
		"role":  string(principal.Role),
	}).Info("signed in")
	return principal, nil
}

func (c *Context) login(ctx context.Context, email, password string) (auth.Principal, error) {
	principal, err := c.authn.Authenticate(ctx, email, password)
	if err != nil {
		return auth.Principal{}, err
	}
	if principal.RoleLevel == auth.LevelNone {
		return auth.Principal{}, auth.ErrAccessDenied
	}
	principal.Role = principal.EffectiveRole()

	encoded, err := c.codec.EncodePrincipal(principal)
	if err != nil {
		return auth.Principal{}, err
	}
	sealed, err := c.codec.SealCredential(auth.BasicToken(email, password))
	if err != nil {
		return auth.Principal{}, err
	}
	c.storage.Set(AuthKey, sealed)
	c.storage.Set(UserKey, encoded)
	return principal, nil
}

// Logout always clears both slots.
func (c *Context) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	c.principal = nil
	c.state = Anonymous
}

// ForceSignOut is called when the data layer reports the credential expired.
func (c *Context) ForceSignOut() {
	c.Logout()
}

func (c *Context) clearLocked() {
	c.storage.Remove(AuthKey)
	c.storage.Remove(UserKey)
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Current returns a copy of the principal, or nil while loading, anonymous or
// outside a request.
func (c *Context) Current() *auth.Principal {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Authenticated || c.principal == nil {
		return nil
	}
	p := *c.principal
	return &p
}

func (c *Context) IsAuthenticated() bool {
	return c.Current() != nil
}

func (c *Context) IsAdmin() bool {
	p := c.Current()
	return p != nil && p.RoleLevel == auth.LevelAdmin
}

func (c *Context) IsReadOnly() bool {
	p := c.Current()
	return p != nil && p.RoleLevel == auth.LevelReadOnly
}

var ErrNoCredential = errors.New("no stored credential")

// AuthHeader returns the Authorization header value for backend calls.
func (c *Context) AuthHeader() (string, error) {
	sealed, ok := c.storage.Get(AuthKey)
	if !ok {
		return "", ErrNoCredential
	}
	token, err := c.codec.OpenCredential(sealed)
	if err != nil {
		return "", err
	}
	return "Basic " + token, nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, s *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, or nil outside a hydrated request.
func FromContext(ctx context.Context) *Context {
	s, _ := ctx.Value(ctxKey{}).(*Context)
	return s
}
