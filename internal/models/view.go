package models

// Form holds the credentials typed by the user.
type Form struct {
	Username string // Never cleared by the controller
	Password string // Cleared after a successful login
}

// Principal describes the signed-in user.
type Principal struct {
	Username string   // Login name
	Roles    []string // Security groups reported by the session endpoint
}

// View is an immutable snapshot of everything the renderer needs.
type View struct {
	State        State     // Current session state
	Form         Form      // Credentials form
	Submitting   bool      // True while a login or logout request is outstanding
	ErrorMessage string    // Set only by a failed login
	Principal    Principal // Empty unless authenticated
}

// NewView returns the view shown before the session check completes.
func NewView() View {
	return View{State: StateLoading}
}
