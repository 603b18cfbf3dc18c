package session

import "github.com/sbilibin2017/gw-session-client/internal/models"

// Reduce returns the view that follows v after e. v is not modified.
func Reduce(v models.View, e Event) models.View {
	next := cloneView(v)

	switch e := e.(type) {
	case SessionCheckStarted:
		next.State = models.StateLoading
		next.ErrorMessage = ""
		next.Principal = models.Principal{}

	case SessionChecked:
		if e.Authenticated {
			next.State = models.StateAuthenticated
			next.Principal = models.Principal{
				Username: e.Principal.Username,
				Roles:    cloneRoles(e.Principal.Roles),
			}
		} else {
			next.State = models.StateUnauthenticated
			next.Principal = models.Principal{}
		}

	case LoginStarted:
		next.ErrorMessage = ""
		next.Submitting = true

	case LoginSucceeded:
		next.Form.Password = ""
		next.State = models.StateAuthenticated
		next.Principal = models.Principal{Username: v.Form.Username}
		next.Submitting = false

	case LoginFailed:
		next.ErrorMessage = MessageFor(e.Err)
		next.Submitting = false

	case LogoutStarted:
		next.Submitting = true
		next.ErrorMessage = ""

	case LogoutFinished:
		next.Submitting = false
		next.State = models.StateUnauthenticated
		next.Principal = models.Principal{}

	case UsernameChanged:
		next.Form.Username = e.Value

	case PasswordChanged:
		next.Form.Password = e.Value
	}

	return next
}

func cloneView(v models.View) models.View {
	v.Principal.Roles = cloneRoles(v.Principal.Roles)
	return v
}

func cloneRoles(roles []string) []string {
	if roles == nil {
		return nil
	}
	return append([]string(nil), roles...)
}
