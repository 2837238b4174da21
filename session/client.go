// Package session owns the access token lifecycle for the portal API:
// attaching the bearer credential to outbound requests, recovering once from
// an expired token via the refresh endpoint, and exposing login, logout and
// role predicates to callers.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/internal/config"
	apierrors "github.com/ludmilpaulo/rayleneimmigration.co.za/internal/errors"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/session/tokenstore"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/users"
)

const apiPrefix = "/api"

// RedirectFunc is invoked when a refresh fails and the session is no longer
// recoverable. A browser embedding would navigate to the login entry point;
// the default is a no-op.
type RedirectFunc func(loginPath string)

// Client mediates all authenticated communication with the backend API. It
// exclusively owns the persisted access token and the in-memory user record;
// pages and services only read through its methods.
type Client struct {
	baseURL        string
	loginPath      string
	httpClient     *http.Client
	tokens         tokenstore.Store
	redirect       RedirectFunc
	refreshTimeout time.Duration
	logger         zerolog.Logger
	nowTime        func() time.Time // nowTime function (injectable for testing)

	userLock sync.RWMutex
	user     *users.User

	// Concurrent 401s coalesce into a single refresh call; late arrivals
	// wait on the in-flight refresh instead of starting their own.
	refreshGroup singleflight.Group
}

// Option defines a function type to modify the Client instance
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is still
// installed if the client has none, since the refresh credential rides on a
// same-origin cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger (the default discards everything)
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRedirectFunc sets the hook fired once per failed-refresh event
func WithRedirectFunc(fn RedirectFunc) Option {
	return func(c *Client) {
		c.redirect = fn
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// New creates a session client against cfg's base URL, persisting the access
// token in store.
func New(cfg config.ClientConfig, store tokenstore.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("[session.New] token store is required")
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		loginPath:      cfg.GetLoginPath(),
		tokens:         store,
		redirect:       func(string) {},
		refreshTimeout: cfg.GetRefreshTimeout(),
		logger:         zerolog.Nop(),
		nowTime:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("[session.New] cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

// Login authenticates with email and password. On success the access token
// is persisted, the refresh cookie lands in the jar, and the user record is
// fetched. A rejected login never persists anything.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.dispatch(ctx, http.MethodPost, "/auth/login/", loginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, apierrors.Wrapf(apierrors.ErrRequestFailed, "login: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		drain(resp.Body)
		c.logger.Warn().Str("email", email).Int("status", resp.StatusCode).Msg("login rejected")
		return nil, apierrors.ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// A broken server or proxy is not a wrong password
		drain(resp.Body)
		return nil, apierrors.Wrapf(apierrors.ErrRequestFailed, "login: status %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, apierrors.Wrapf(err, "login: decode token response")
	}
	if tokens.Access == "" {
		return nil, apierrors.Wrapf(apierrors.ErrInternal, "login: empty access token")
	}
	if err := c.tokens.Set(tokens.Access); err != nil {
		return nil, apierrors.Wrapf(err, "login: persist token")
	}
	c.logger.Debug().Str("email", email).Msg("login succeeded")

	if _, err := c.CurrentUser(ctx); err != nil {
		if apierrors.Is(err, apierrors.ErrUnauthenticated) {
			return nil, err
		}
		// Transport trouble right after a successful login; the user record
		// will be fetched on the next call.
		c.logger.Warn().Err(err).Msg("post-login user fetch failed")
	}
	return &Session{AccessToken: tokens.Access}, nil
}

// Logout tells the server to drop the session on a best-effort basis, then
// unconditionally clears the persisted token and the in-memory user. Network
// or server failures during logout are swallowed; logging out locally always
// succeeds. Logging out while already logged out is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	token, _ := c.tokens.Get()
	if resp, err := c.dispatch(ctx, http.MethodPost, "/auth/logout/", nil, token); err != nil {
		c.logger.Debug().Err(err).Msg("server logout failed, clearing local session anyway")
	} else {
		drain(resp.Body)
		resp.Body.Close()
	}

	c.setUser(nil)
	if err := c.tokens.Clear(); err != nil {
		return apierrors.Wrapf(err, "logout: clear token")
	}
	return nil
}

// CurrentUser fetches the profile from /me/ and replaces the in-memory user
// wholesale. An explicit authentication failure clears the persisted token
// and the user; a transport failure leaves both untouched so a flaky network
// does not log anyone out.
func (c *Client) CurrentUser(ctx context.Context) (*users.User, error) {
	var u users.User
	if err := c.Do(ctx, http.MethodGet, "/me/", nil, &u); err != nil {
		if apierrors.Is(err, apierrors.ErrUnauthenticated) {
			c.setUser(nil)
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.logger.Warn().Err(clearErr).Msg("clearing token after auth failure")
			}
		}
		return nil, err
	}
	c.setUser(&u)
	return &u, nil
}

// Resume restores a session at process start: when a persisted token exists
// the user record is fetched, otherwise (nil, nil) is returned and the client
// stays unauthenticated.
func (c *Client) Resume(ctx context.Context) (*users.User, error) {
	token, err := c.tokens.Get()
	if err != nil {
		return nil, apierrors.Wrapf(err, "resume: read token")
	}
	if token == "" {
		return nil, nil
	}
	return c.CurrentUser(ctx)
}

// RegistrationRequest carries the fields accepted by the register endpoint
type RegistrationRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// Register creates a new client account. The password is checked against the
// server's strength rules locally first so obvious rejects skip the network.
func (c *Client) Register(ctx context.Context, req RegistrationRequest) error {
	if err := users.ValidatePasswordStrength(req.Password); err != nil {
		return apierrors.Wrapf(apierrors.ErrValidation, "register: %v", err)
	}
	if req.PasswordConfirm == "" {
		req.PasswordConfirm = req.Password
	}
	return c.Do(ctx, http.MethodPost, "/auth/register/", req, nil)
}

type changePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// ChangePassword updates the authenticated user's password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := users.ValidatePasswordStrength(newPassword); err != nil {
		return apierrors.Wrapf(apierrors.ErrValidation, "change password: %v", err)
	}
	req := changePasswordRequest{
		OldPassword:        oldPassword,
		NewPassword:        newPassword,
		NewPasswordConfirm: newPassword,
	}
	return c.Do(ctx, http.MethodPost, "/me/change-password/", req, nil)
}

// User returns the currently loaded user record, or nil when no session is
// active or the record has not been fetched yet.
func (c *Client) User() *users.User {
	c.userLock.RLock()
	defer c.userLock.RUnlock()
	return c.user
}

// IsAdmin reports whether the loaded user belongs on the staff side
func (c *Client) IsAdmin() bool {
	return c.User().IsAdmin()
}

// IsClient reports whether the loaded user is a regular portal client
func (c *Client) IsClient() bool {
	return c.User().IsClient()
}

func (c *Client) setUser(u *users.User) {
	c.userLock.Lock()
	defer c.userLock.Unlock()
	c.user = u
}

// Do performs an authenticated JSON request against path (relative to /api).
// The persisted access token, when present, is attached as a bearer
// credential. A 401 response triggers a single coalesced token refresh and
// exactly one redispatch of the original request; a request that fails
// authorization twice is a hard failure. Non-auth failures propagate
// untouched and never disturb the stored credentials.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Get()
	if err != nil {
		return apierrors.Wrapf(err, "read token")
	}

	resp, err := c.dispatch(ctx, method, path, body, token)
	if err != nil {
		return apierrors.Wrapf(apierrors.ErrRequestFailed, "%s %s: %v", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp.Body)
		resp.Body.Close()

		newToken, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			return apierrors.ErrUnauthenticated
		}

		// Single redispatch with the fresh token; whatever comes back is the
		// final outcome for this request.
		resp, err = c.dispatch(ctx, method, path, body, newToken)
		if err != nil {
			return apierrors.Wrapf(apierrors.ErrRequestFailed, "%s %s (retry): %v", method, path, err)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp.Body)
			resp.Body.Close()
			return apierrors.ErrUnauthenticated
		}
	}

	return decodeResponse(resp, method, path, out)
}

// dispatch builds and sends a single HTTP request. The body is re-encoded on
// every call so a retried request never reuses a consumed reader.
func (c *Client) dispatch(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return apierrors.Wrapf(apierrors.ErrNotFound, "%s %s", method, path)
	case resp.StatusCode == http.StatusBadRequest:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apierrors.Wrapf(apierrors.ErrValidation, "%s %s: %s", method, path, strings.TrimSpace(string(detail)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		drain(resp.Body)
		return apierrors.Wrapf(apierrors.ErrRequestFailed, "%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		drain(resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierrors.Wrapf(err, "%s %s: decode response", method, path)
	}
	return nil
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}
