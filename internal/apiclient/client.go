// Package apiclient talks to the HR REST backend on behalf of the signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/platform/logging"
	"hrms/internal/session"
)

var (
	ErrAuthorizationExpired      = errors.New("authorization expired")
	ErrAuthorizationInsufficient = errors.New("authorization insufficient")
	ErrRejected                  = errors.New("request rejected")
)

// StatusError carries an unexpected backend response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Unwrap maps client errors onto ErrRejected.
func (e *StatusError) Unwrap() error {
	if e.Status >= 400 && e.Status < 500 {
		return ErrRejected
	}
	return nil
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

const maxErrorBody = 4 << 10

func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	out := []hr.Record{}
	if err := c.do(ctx, http.MethodGet, e, nil, &out, string(e)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error) {
	var out hr.Record
	if err := c.do(ctx, http.MethodPost, e, payload, &out, string(e)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error) {
	var out hr.Record
	if err := c.do(ctx, http.MethodPut, e, payload, &out, string(e), id); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete of an id the backend does not know is a no-op.
func (c *Client) Delete(ctx context.Context, e hr.Entity, id string) error {
	err := c.do(ctx, http.MethodDelete, e, nil, nil, string(e), id)
	if errors.Is(err, hr.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) Report(ctx context.Context, k reports.Kind) ([]hr.Record, error) {
	if !k.Valid() {
		return nil, reports.ErrUnknownReport
	}
	out := []hr.Record{}
	if err := c.do(ctx, http.MethodGet, "", nil, &out, "reports", string(k)); err != nil {
		return nil, err
	}
	return out, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate posts the credentials to the backend login endpoint.
func (c *Client) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	var out auth.Principal
	body := loginRequest{Email: auth.NormalizeEmail(email), Password: password}
	req, err := c.request(ctx, http.MethodPost, body, "auth", "login")
	if err != nil {
		return auth.Principal{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Principal{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return auth.Principal{}, statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return auth.Principal{}, fmt.Errorf("decode principal: %w", err)
	}
	out.Role = out.EffectiveRole()
	return out, nil
}

// Register submits a sign-up to the backend. The account it creates has no
// access until an administrator grants one.
func (c *Client) Register(ctx context.Context, reg auth.Registration) (auth.Principal, error) {
	var out auth.Principal
	reg.Email = auth.NormalizeEmail(reg.Email)
	req, err := c.request(ctx, http.MethodPost, reg, "auth", "register")
	if err != nil {
		return auth.Principal{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Principal{}, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusConflict:
		return auth.Principal{}, auth.ErrEmailTaken
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return auth.Principal{}, statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return auth.Principal{}, fmt.Errorf("decode principal: %w", err)
	}
	out.Role = out.EffectiveRole()
	return out, nil
}

func (c *Client) request(ctx context.Context, method string, body any, segments ...string) (*http.Request, error) {
	u := *c.baseURL
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	u.Path = u.Path + "/" + strings.Join(escaped, "/")
	u.RawPath = ""

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends an authorized request and decodes a 2xx body into out.
// A 401 signs the session out; a 403 is logged and reported.
func (c *Client) do(ctx context.Context, method string, e hr.Entity, body, out any, segments ...string) error {
	req, err := c.request(ctx, method, body, segments...)
	if err != nil {
		return err
	}
	sess := session.FromContext(ctx)
	if sess != nil {
		if header, err := sess.AuthHeader(); err == nil {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"method": method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	})
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if sess != nil {
			sess.ForceSignOut()
		}
		log.Info("backend rejected credentials, signing out")
		return ErrAuthorizationExpired
	case resp.StatusCode == http.StatusForbidden:
		log.Warn("access denied")
		return ErrAuthorizationInsufficient
	case resp.StatusCode == http.StatusNotFound && e != "":
		return hr.NotFound(e)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))
	var parsed struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		switch {
		case parsed.Message != "":
			msg = parsed.Message
		case parsed.Error != nil:
			msg = fmt.Sprint(parsed.Error)
		}
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}
