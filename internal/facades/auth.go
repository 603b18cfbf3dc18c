package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/net/publicsuffix"

	"github.com/sbilibin2017/gw-session-client/internal/logger"
	"github.com/sbilibin2017/gw-session-client/internal/middlewares"
	"github.com/sbilibin2017/gw-session-client/internal/models"
)

// Endpoint paths of the session-cookie auth API.
const (
	LoginPath   = "/api/v1/auth/login"
	LogoutPath  = "/api/v1/auth/logout"
	SessionPath = "/api/v1/auth/session"
)

const (
	opLogin  = "login"
	opLogout = "logout"
)

// AuthHTTPFacade talks to the auth API over HTTP. Cookies issued by the
// server are kept in the client's jar and sent back on every request.
type AuthHTTPFacade struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures an AuthHTTPFacade.
type Option func(*AuthHTTPFacade)

// WithHTTPClient replaces the default pooled client. A client without a
// cookie jar gets one assigned, and its transport is wrapped for request logging.
func WithHTTPClient(client *http.Client) Option {
	return func(f *AuthHTTPFacade) {
		f.client = client
	}
}

// WithTimeout sets the overall per-request timeout, whichever client is used.
func WithTimeout(timeout time.Duration) Option {
	return func(f *AuthHTTPFacade) {
		f.timeout = timeout
	}
}

// NewAuthHTTPFacade creates a facade for the API rooted at baseURL.
func NewAuthHTTPFacade(baseURL string, opts ...Option) (*AuthHTTPFacade, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	f := &AuthHTTPFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.timeout > 0 {
		f.client.Timeout = f.timeout
	}
	if _, ok := f.client.Transport.(*middlewares.LoggingTransport); !ok {
		f.client.Transport = middlewares.NewLoggingTransport(f.client.Transport, logger.Log)
	}

	if f.client.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		f.client.Jar = jar
	}

	return f, nil
}

// Login posts the credentials. It succeeds only on 204 No Content.
func (f *AuthHTTPFacade) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	resp, err := f.do(ctx, http.MethodPost, LoginPath, body)
	if err != nil {
		logger.Log.Errorw("login request failed", "username", username, "error", err)
		return fmt.Errorf("login request failed: %w", err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		logger.Log.Infow("login succeeded", "username", username)
		return nil
	case http.StatusUnauthorized:
		logger.Log.Infow("login rejected", "username", username)
		return ErrInvalidCredentials
	default:
		logger.Log.Errorw("unexpected login status", "username", username, "status", resp.StatusCode)
		return &UnexpectedStatusError{Op: opLogin, Code: resp.StatusCode}
	}
}

// Logout asks the server to drop the session. Any 2xx counts as success.
func (f *AuthHTTPFacade) Logout(ctx context.Context) error {
	resp, err := f.do(ctx, http.MethodPost, LogoutPath, nil)
	if err != nil {
		logger.Log.Errorw("logout request failed", "error", err)
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Log.Errorw("unexpected logout status", "status", resp.StatusCode)
		return &UnexpectedStatusError{Op: opLogout, Code: resp.StatusCode}
	}

	logger.Log.Infow("logout completed", "status", resp.StatusCode)
	return nil
}

// CheckSession reports whether the current cookie is accepted. Only 200
// means authenticated; every other outcome, transport errors included,
// means unauthenticated.
func (f *AuthHTTPFacade) CheckSession(ctx context.Context) (models.Principal, bool) {
	resp, err := f.do(ctx, http.MethodGet, SessionPath, nil)
	if err != nil {
		logger.Log.Warnw("session check failed, treating as unauthenticated", "error", err)
		return models.Principal{}, false
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		logger.Log.Debugw("session check: not authenticated", "status", resp.StatusCode)
		return models.Principal{}, false
	}

	var body models.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		logger.Log.Warnw("session check: unreadable body", "error", err)
	}

	return models.Principal{Username: body.Username, Roles: body.Roles}, true
}

func (f *AuthHTTPFacade) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return f.client.Do(req)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
