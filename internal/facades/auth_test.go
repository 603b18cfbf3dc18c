package facades

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-session-client/internal/authstub"
	"github.com/sbilibin2017/gw-session-client/internal/logger"
	"github.com/sbilibin2017/gw-session-client/internal/middlewares"
	"github.com/sbilibin2017/gw-session-client/internal/models"
)

func statusServer(t *testing.T, status int, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFacade(t *testing.T, baseURL string) *AuthHTTPFacade {
	t.Helper()
	f, err := NewAuthHTTPFacade(baseURL, WithTimeout(5*time.Second))
	require.NoError(t, err)
	return f
}

func TestNewAuthHTTPFacade_InvalidBaseURL(t *testing.T) {
	for _, baseURL := range []string{"", "localhost:8080", "/api", "http://%zz"} {
		t.Run(baseURL, func(t *testing.T) {
			f, err := NewAuthHTTPFacade(baseURL)
			assert.Error(t, err)
			assert.Nil(t, f)
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    error
		wantStatus int
	}{
		{name: "no content", status: http.StatusNoContent},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrInvalidCredentials},
		{name: "server error", status: http.StatusInternalServerError, wantStatus: http.StatusInternalServerError},
		{name: "plain OK is not success", status: http.StatusOK, wantStatus: http.StatusOK},
		{name: "forbidden", status: http.StatusForbidden, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := statusServer(t, tt.status, func(r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, LoginPath, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body models.LoginRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, models.LoginRequest{Username: "alice", Password: "secret"}, body)
			})

			err := newFacade(t, srv.URL).Login(context.Background(), "alice", "secret")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantStatus != 0:
				var statusErr *UnexpectedStatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, "login", statusErr.Op)
				assert.Equal(t, tt.wantStatus, statusErr.Code)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogin_EmptyCredentialsSentAsIs(t *testing.T) {
	srv := statusServer(t, http.StatusUnauthorized, func(r *http.Request) {
		var raw map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]string{"username": "", "password": ""}, raw)
	})

	err := newFacade(t, srv.URL).Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	err := newFacade(t, baseURL).Login(context.Background(), "alice", "secret")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	var statusErr *UnexpectedStatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "no content", status: http.StatusNoContent},
		{name: "ok", status: http.StatusOK},
		{name: "accepted", status: http.StatusAccepted},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := statusServer(t, tt.status, func(r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, LogoutPath, r.URL.Path)
			})

			err := newFacade(t, srv.URL).Logout(context.Background())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var statusErr *UnexpectedStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, "logout", statusErr.Op)
			assert.Equal(t, tt.status, statusErr.Code)
		})
	}
}

func TestCheckSession(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected bool
	}{
		{name: "ok", status: http.StatusOK, expected: true},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "not found", status: http.StatusNotFound},
		{name: "no content", status: http.StatusNoContent},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not modified", status: http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := statusServer(t, tt.status, func(r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, SessionPath, r.URL.Path)
			})

			_, ok := newFacade(t, srv.URL).CheckSession(context.Background())
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestCheckSession_DecodesPrincipal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"authenticated":true,"username":"alice","roles":["user","admin"]}`))
	}))
	defer srv.Close()

	principal, ok := newFacade(t, srv.URL).CheckSession(context.Background())
	assert.True(t, ok)
	assert.Equal(t, models.Principal{Username: "alice", Roles: []string{"user", "admin"}}, principal)
}

func TestCheckSession_MalformedBodyStillAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	principal, ok := newFacade(t, srv.URL).CheckSession(context.Background())
	assert.True(t, ok)
	assert.Empty(t, principal.Username)
}

func TestCheckSession_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, ok := newFacade(t, baseURL).CheckSession(context.Background())
	assert.False(t, ok)
}

func TestCookieRoundTrip(t *testing.T) {
	stub := authstub.New("test-secret", time.Hour)
	require.NoError(t, stub.Users.Add(context.Background(), "alice", "correct", "user"))
	srv := httptest.NewServer(stub)
	defer srv.Close()

	ctx := context.Background()
	f := newFacade(t, srv.URL+"/")

	_, ok := f.CheckSession(ctx)
	assert.False(t, ok, "no cookie yet")

	assert.ErrorIs(t, f.Login(ctx, "alice", "wrong"), ErrInvalidCredentials)
	require.NoError(t, f.Login(ctx, "alice", "correct"))

	principal, ok := f.CheckSession(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, []string{"user"}, principal.Roles)

	require.NoError(t, f.Logout(ctx))

	_, ok = f.CheckSession(ctx)
	assert.False(t, ok, "cookie should be gone after logout")
}

func TestWithHTTPClient_GetsCookieJar(t *testing.T) {
	client := &http.Client{}
	f, err := NewAuthHTTPFacade("http://auth.local", WithHTTPClient(client))
	require.NoError(t, err)
	assert.Same(t, client, f.client)
	assert.NotNil(t, client.Jar)
}

func TestOptions_OrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		opts func(client *http.Client) []Option
	}{
		{
			name: "timeout before client",
			opts: func(client *http.Client) []Option {
				return []Option{WithTimeout(3 * time.Second), WithHTTPClient(client)}
			},
		},
		{
			name: "timeout after client",
			opts: func(client *http.Client) []Option {
				return []Option{WithHTTPClient(client), WithTimeout(3 * time.Second)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &http.Client{}
			f, err := NewAuthHTTPFacade("http://auth.local", tt.opts(client)...)
			require.NoError(t, err)

			assert.Equal(t, 3*time.Second, f.client.Timeout)
			assert.IsType(t, &middlewares.LoggingTransport{}, f.client.Transport)
		})
	}
}

func TestWithHTTPClient_SendsRequestID(t *testing.T) {
	var seenID string
	srv := statusServer(t, http.StatusUnauthorized, func(r *http.Request) {
		seenID = r.Header.Get(middlewares.RequestIDHeader)
	})

	f, err := NewAuthHTTPFacade(srv.URL, WithHTTPClient(&http.Client{}))
	require.NoError(t, err)

	_, ok := f.CheckSession(context.Background())
	assert.False(t, ok)
	assert.NotEmpty(t, seenID)
}

func TestNewAuthHTTPFacade_DoesNotDoubleWrap(t *testing.T) {
	client := &http.Client{Transport: middlewares.NewLoggingTransport(nil, logger.Log)}
	wrapped := client.Transport

	_, err := NewAuthHTTPFacade("http://auth.local", WithHTTPClient(client))
	require.NoError(t, err)
	assert.Same(t, wrapped, client.Transport)
}
