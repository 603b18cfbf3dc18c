package models

// SessionResponse represents the JSON body of the session endpoint
type SessionResponse struct {
	// Whether the session cookie is valid
	// example: true
	Authenticated bool `json:"authenticated"`

	// Login name of the session owner
	// example: alice
	Username string `json:"username,omitempty"`

	// Security groups of the session owner
	// example: ["user"]
	Roles []string `json:"roles,omitempty"`
}
