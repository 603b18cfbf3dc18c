package models

// State is the view mode reflecting authentication status.
type State int

const (
	StateLoading         State = iota // Session check in flight at startup
	StateUnauthenticated              // No valid session
	StateAuthenticated                // Session cookie accepted by the server
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
