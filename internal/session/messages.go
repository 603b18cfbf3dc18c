package session

import (
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-session-client/internal/facades"
)

// User-facing login error messages.
const (
	MessageInvalidCredentials = "Invalid username or password."
	MessageLoginFailed        = "Login failed."
)

// MessageFor maps a login error to the text shown to the user.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *facades.UnexpectedStatusError
	switch {
	case errors.Is(err, facades.ErrInvalidCredentials):
		return MessageInvalidCredentials
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Login failed (%d).", statusErr.Code)
	default:
		return MessageLoginFailed
	}
}
