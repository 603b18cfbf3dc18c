package session

import "github.com/sbilibin2017/gw-session-client/internal/models"

// Event is an input to Reduce.
type Event interface {
	event()
}

// SessionCheckStarted is emitted when initialize begins.
type SessionCheckStarted struct{}

// SessionChecked carries the outcome of the session check.
type SessionChecked struct {
	Authenticated bool
	Principal     models.Principal
}

// LoginStarted is emitted before the login request is sent.
type LoginStarted struct{}

// LoginSucceeded is emitted on a 204 from the login endpoint.
type LoginSucceeded struct{}

// LoginFailed carries the login error.
type LoginFailed struct {
	Err error
}

// LogoutStarted is emitted before the logout request is sent.
type LogoutStarted struct{}

// LogoutFinished is emitted once the logout call returns, whatever the outcome.
type LogoutFinished struct{}

// UsernameChanged edits the username field.
type UsernameChanged struct {
	Value string
}

// PasswordChanged edits the password field.
type PasswordChanged struct {
	Value string
}

func (SessionCheckStarted) event() {}
func (SessionChecked) event()      {}
func (LoginStarted) event()        {}
func (LoginSucceeded) event()      {}
func (LoginFailed) event()         {}
func (LogoutStarted) event()       {}
func (LogoutFinished) event()      {}
func (UsernameChanged) event()     {}
func (PasswordChanged) event()     {}
