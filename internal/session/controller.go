package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sbilibin2017/gw-session-client/internal/logger"
	"github.com/sbilibin2017/gw-session-client/internal/models"
)

//go:generate mockgen -source=controller.go -destination=mock_controller.go -package=session

// ErrSubmissionInProgress is returned when a login or logout is requested
// while another one is still outstanding.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// AuthClient defines the remote operations the controller depends on.
type AuthClient interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (models.Principal, bool)
}

// Controller owns the view and turns user actions into remote calls.
// It is safe for concurrent use; the lock is never held across a remote call.
type Controller struct {
	client AuthClient

	mu          sync.Mutex
	view        models.View
	subscribers []func(models.View)
}

// NewController creates a controller in the loading state.
func NewController(client AuthClient) *Controller {
	return &Controller{
		client: client,
		view:   models.NewView(),
	}
}

// View returns a snapshot of the current view.
func (c *Controller) View() models.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneView(c.view)
}

// Subscribe registers fn to be called with the new view after every transition.
// Calls happen on the goroutine that caused the transition.
func (c *Controller) Subscribe(fn func(models.View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// SetUsername edits the username field.
func (c *Controller) SetUsername(username string) {
	c.dispatch(UsernameChanged{Value: username})
}

// SetPassword edits the password field.
func (c *Controller) SetPassword(password string) {
	c.dispatch(PasswordChanged{Value: password})
}

// Initialize checks the session and leaves the view authenticated or
// unauthenticated. Failures of any kind count as unauthenticated.
func (c *Controller) Initialize(ctx context.Context) {
	c.dispatch(SessionCheckStarted{})

	principal, ok := c.client.CheckSession(ctx)
	logger.Log.Infow("session checked", "authenticated", ok, "username", principal.Username)

	c.dispatch(SessionChecked{Authenticated: ok, Principal: principal})
}

// SubmitLogin sends the current form values. A rejected login is reported
// through the view's error message, not the returned error; the only error
// returned is ErrSubmissionInProgress.
func (c *Controller) SubmitLogin(ctx context.Context) error {
	v, ok := c.begin(LoginStarted{})
	if !ok {
		logger.Log.Warnw("login ignored, submission in progress")
		return ErrSubmissionInProgress
	}

	if err := c.client.Login(ctx, v.Form.Username, v.Form.Password); err != nil {
		logger.Log.Infow("login failed", "username", v.Form.Username, "error", err)
		c.dispatch(LoginFailed{Err: err})
		return nil
	}

	c.dispatch(LoginSucceeded{})
	return nil
}

// SubmitLogout ends the session. The view always ends up unauthenticated,
// even when the server reports a failure.
func (c *Controller) SubmitLogout(ctx context.Context) error {
	if _, ok := c.begin(LogoutStarted{}); !ok {
		logger.Log.Warnw("logout ignored, submission in progress")
		return ErrSubmissionInProgress
	}

	if err := c.client.Logout(ctx); err != nil {
		logger.Log.Warnw("logout failed, signing out locally", "error", err)
	}

	c.dispatch(LogoutFinished{})
	return nil
}

// begin applies e only if no submission is outstanding.
func (c *Controller) begin(e Event) (models.View, bool) {
	c.mu.Lock()
	if c.view.Submitting {
		c.mu.Unlock()
		return models.View{}, false
	}
	c.view = Reduce(c.view, e)
	v, subs := c.snapshot()
	c.mu.Unlock()

	notify(subs, v)
	return v, true
}

func (c *Controller) dispatch(e Event) {
	c.mu.Lock()
	c.view = Reduce(c.view, e)
	v, subs := c.snapshot()
	c.mu.Unlock()

	notify(subs, v)
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() (models.View, []func(models.View)) {
	subs := make([]func(models.View), len(c.subscribers))
	copy(subs, c.subscribers)
	return cloneView(c.view), subs
}

func notify(subs []func(models.View), v models.View) {
	for _, fn := range subs {
		fn(v)
	}
}
