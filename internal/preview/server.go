// Package preview serves a live HTML and JSON view of a sidebar file for
// local authoring.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/sidenav/internal/content"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// DefaultSidebar is rendered by the index page.
	DefaultSidebar string
	// Validate is the base for validation requests. Its Resolver is
	// replaced by Content when Content is set.
	Validate sidebar.ValidateOptions
	Content  *content.Set
}

// Loader reads the current sidebar file.
type Loader func() (*sidebar.File, error)

// Server is the local preview server.
type Server struct {
	cfg        Config
	load       Loader
	logger     *slog.Logger
	hub        *Hub
	router     chi.Router
	httpServer *http.Server

	mu   sync.RWMutex
	file *sidebar.File
}

// New loads the sidebar once and builds the router. A nil logger discards
// log output.
func New(cfg Config, load Loader, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	file, err := load()
	if err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}
	s := &Server{
		cfg:    cfg,
		load:   load,
		logger: logger,
		hub:    NewHub(logger, cfg.AllowAll),
		file:   file,
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The websocket must not sit behind the timeout middleware.
	r.Get("/ws", s.hub.ServeWS(s.hello))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", s.handleIndex)
		s.registerAPI(r)
	})

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub that receives reload notifications.
func (s *Server) Hub() *Hub { return s.hub }

// File returns the last successfully loaded sidebar file.
func (s *Server) File() *sidebar.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Reload re-reads the sidebar file. On failure the previous tree stays in
// place and the error is broadcast to connected clients.
func (s *Server) Reload() error {
	file, err := s.load()
	if err != nil {
		s.logger.Warn("sidebar reload failed", "error", err)
		s.hub.Broadcast(Message{Type: MessageError, Message: err.Error()})
		return err
	}

	s.mu.Lock()
	s.file = file
	s.mu.Unlock()

	s.logger.Info("sidebar reloaded", "sidebars", file.Names())
	s.hub.Broadcast(Message{Type: MessageReload, Sidebars: file.Names()})
	return nil
}

func (s *Server) hello() Message {
	return Message{Type: MessageHello, Sidebars: s.File().Names()}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestLogger logs each request with slog once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
