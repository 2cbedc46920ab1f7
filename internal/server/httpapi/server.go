// Package httpapi exposes the service layer as a JSON HTTP API. The routes
// map 1:1 onto the service operations; there is no session machinery, the
// acting user travels explicitly in each request.
package httpapi

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/psemenov/passvault/internal/logging"
)

// Server wraps the router and the underlying http.Server.
type Server struct {
	router *mux.Router
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds the HTTP server and registers all routes.
func NewServer(addr string, logger logging.Logger, h *Handlers) *Server {
	router := mux.NewRouter()

	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{router: router, srv: srv, logger: logger}
	s.registerRoutes(h)
	return s
}

func (s *Server) registerRoutes(h *Handlers) {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", h.RegisterUser).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	api.HandleFunc("/vaults", h.CreateVault).Methods(http.MethodPost)
	api.HandleFunc("/vaults/{vaultID}/categories", h.CreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/vaults/{vaultID}/items", h.GetVaultItems).Methods(http.MethodGet)
	api.HandleFunc("/vaults/{vaultID}/share", h.ShareVault).Methods(http.MethodPost)

	api.HandleFunc("/vaults/{vaultID}/password-entries", h.CreatePasswordEntry).Methods(http.MethodPost)
	api.HandleFunc("/vaults/{vaultID}/secure-notes", h.CreateSecureNote).Methods(http.MethodPost)
	api.HandleFunc("/vaults/{vaultID}/credit-cards", h.CreateCreditCard).Methods(http.MethodPost)

	api.HandleFunc("/items/search", h.SearchItems).Methods(http.MethodGet)

	api.HandleFunc("/passwords/generate", h.GeneratePassword).Methods(http.MethodPost)

	api.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
}

// Start blocks serving requests until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
