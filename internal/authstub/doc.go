// Package authstub is an in-process implementation of the session-cookie
// auth API (login, logout, session). It issues an HttpOnly JWT cookie the
// same way the production backend does and exists so the client can be
// exercised end to end in tests.
package authstub
