// Package web exposes a session over HTTP with JSON bodies.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	session    *session.Session
	completer  suggest.ICompleter
	httpServer *http.Server
	router     *mux.Router
	log        *log.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, sess *session.Session, completer suggest.ICompleter) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		config:    cfg,
		session:   sess,
		completer: completer,
		log:       logger.New("http"),
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/recent", s.handleRecent).Methods(http.MethodGet)
	api.HandleFunc("/words", s.handleAdd).Methods(http.MethodPost)
	api.HandleFunc("/words/{word}", s.handleLookup).Methods(http.MethodGet)
	api.HandleFunc("/words/{word}/accept", s.handleAccept).Methods(http.MethodPost)
	api.HandleFunc("/words/{word}/reject", s.handleReject).Methods(http.MethodPost)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/activity", s.handleActivity).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("Shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
