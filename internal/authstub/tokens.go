package authstub

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login.
const CookieName = "lc_access"

// CookiePath scopes the cookie to the API.
const CookiePath = "/api/v1"

var errNoCookie = errors.New("session cookie missing")

// Claims are the fields carried by a session token.
type Claims struct {
	Username string
	Roles    []string
}

// Tokens signs and verifies session tokens.
type Tokens struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// NewTokens creates a new Tokens instance
func NewTokens(secretKey string, expiration time.Duration) *Tokens {
	return &Tokens{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a token for username with the given roles
func (t *Tokens) Generate(ctx context.Context, username string, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   username,
		"roles": roles,
		"exp":   now.Add(t.Exp).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.SecretKey))
}

// Parse verifies tokenString and returns its claims
func (t *Tokens) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("sub not found in token")
	}

	var roles []string
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	return &Claims{Username: sub, Roles: roles}, nil
}

// TokenFromRequest extracts the token string from the session cookie
func (t *Tokens) TokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", errNoCookie
	}
	return c.Value, nil
}
