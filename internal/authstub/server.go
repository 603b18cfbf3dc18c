package authstub

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Server serves the auth API.
type Server struct {
	Users  *Users
	Tokens *Tokens

	mu       sync.RWMutex
	failures map[string]int
	router   chi.Router
}

// New creates a server signing cookies with secretKey.
func New(secretKey string, exp time.Duration) *Server {
	s := &Server{
		Users:    NewUsers(),
		Tokens:   NewTokens(secretKey, exp),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.injectFailures)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", NewLoginHandler(s.Users, s.Tokens))
		r.Post("/logout", NewLogoutHandler())
		r.Get("/session", NewSessionHandler(s.Tokens))
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailWith makes every request to path answer with status until Reset.
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Reset clears injected failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		status, ok := s.failures[r.URL.Path]
		s.mu.RUnlock()

		if ok {
			w.WriteHeader(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}
