// Package session holds the login/logout view-controller.
//
// Reduce is a pure function from (View, Event) to the next View. Controller
// is the imperative shell: it performs the remote calls and feeds their
// outcomes back into Reduce as events.
package session
