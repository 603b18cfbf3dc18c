package authstub

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type user struct {
	passwordHash []byte
	roles        []string
}

// Users is an in-memory user registry with bcrypt password hashes.
type Users struct {
	mu    sync.RWMutex
	users map[string]user
}

// NewUsers creates an empty registry.
func NewUsers() *Users {
	return &Users{users: make(map[string]user)}
}

// Add registers a user.
func (u *Users) Add(ctx context.Context, username, password string, roles ...string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[username]; ok {
		return ErrUserAlreadyExists
	}
	u.users[username] = user{passwordHash: hashed, roles: append([]string(nil), roles...)}
	return nil
}

// Authenticate checks the password and returns the user's roles.
func (u *Users) Authenticate(ctx context.Context, username, password string) ([]string, error) {
	u.mu.RLock()
	usr, ok := u.users[username]
	u.mu.RUnlock()

	if !ok {
		return nil, ErrUserDoesNotExist
	}
	if err := bcrypt.CompareHashAndPassword(usr.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return append([]string(nil), usr.roles...), nil
}
