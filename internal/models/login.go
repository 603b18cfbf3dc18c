package models

// LoginRequest represents the JSON body sent to the login endpoint
type LoginRequest struct {
	// Username
	// example: alice
	Username string `json:"username"`

	// Password
	// example: secret123
	Password string `json:"password"`
}
