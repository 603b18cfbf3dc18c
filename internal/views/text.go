package views

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sbilibin2017/gw-session-client/internal/models"
)

// TextRenderer writes a plain-text block for each view it is given.
type TextRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render writes v.
func (r *TextRenderer) Render(v models.View) error {
	var b strings.Builder

	switch v.State {
	case models.StateLoading:
		b.WriteString("Checking session...\n")

	case models.StateUnauthenticated:
		b.WriteString("Not signed in.\n")
		if v.Form.Username != "" {
			fmt.Fprintf(&b, "Username: %s\n", v.Form.Username)
		}
		if v.ErrorMessage != "" {
			fmt.Fprintf(&b, "Error: %s\n", v.ErrorMessage)
		}
		if !v.Submitting {
			b.WriteString("Commands: login <username> <password> | user <name> | password <value> | submit | quit\n")
		}

	case models.StateAuthenticated:
		name := v.Principal.Username
		if name == "" {
			name = v.Form.Username
		}
		fmt.Fprintf(&b, "Signed in as %s", name)
		if len(v.Principal.Roles) > 0 {
			fmt.Fprintf(&b, " (roles: %s)", strings.Join(v.Principal.Roles, ", "))
		}
		b.WriteString("\n")
		if !v.Submitting {
			b.WriteString("Commands: logout | status | quit\n")
		}
	}

	if v.Submitting {
		b.WriteString("Please wait...\n")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.w, b.String())
	return err
}
