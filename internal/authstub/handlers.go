package authstub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-session-client/internal/logger"
	"github.com/sbilibin2017/gw-session-client/internal/models"
)

// Authenticator checks credentials and returns the user's roles.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) ([]string, error)
}

// TokenIssuer generates session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, username string, roles []string) (string, error)
}

// TokenVerifier reads and verifies the session token of a request.
type TokenVerifier interface {
	TokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (*Claims, error)
}

// cookieMaxAge is the browser lifetime of the session cookie in seconds.
const cookieMaxAge = 1800

// NewLoginHandler returns an HTTP handler for user login.
// Answers 204 and sets the session cookie, or 401 on bad credentials.
func NewLoginHandler(auth Authenticator, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		roles, err := auth.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials),
				errors.Is(err, ErrUserDoesNotExist):
				logger.Log.Infow("login failed", "username", req.Username)
				w.WriteHeader(http.StatusUnauthorized)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		token, err := tokens.Generate(r.Context(), req.Username, roles)
		if err != nil {
			logger.Log.Errorw("failed to generate token", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     CookiePath,
			MaxAge:   cookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Log.Infow("login succeeded", "username", req.Username, "roles", roles)
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewLogoutHandler returns an HTTP handler that deletes the session cookie.
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     CookiePath,
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Log.Infow("logout completed")
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewSessionHandler returns an HTTP handler reporting the session owner.
// Answers 200 with user details, or 401 when the cookie is missing or invalid.
func NewSessionHandler(tokens TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		tokenString, err := tokens.TokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Debugw("session check: no token cookie")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.SessionResponse{Authenticated: false})
			return
		}

		claims, err := tokens.Parse(ctx, tokenString)
		if err != nil {
			logger.Log.Warnw("session check: invalid token", "err", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.SessionResponse{Authenticated: false})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.SessionResponse{
			Authenticated: true,
			Username:      claims.Username,
			Roles:         claims.Roles,
		})
	}
}
