package facades

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Login when the server answers 401.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UnexpectedStatusError reports a non-success status from an auth endpoint.
type UnexpectedStatusError struct {
	Op   string // "login" or "logout"
	Code int    // HTTP status code
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected %s status %d", e.Op, e.Code)
}
