package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a control API server driving one session
func NewServer(
	ctx context.Context,
	sessionUC interfaces.SessionUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth(sessionUC))

	h := NewSessionHandler(sessionUC)
	router.Route("/api/session", func(r chi.Router) {
		r.Get("/", h.GetScreen)
		r.Post("/extract", h.Extract)
		r.Post("/mode", h.SetMode)
		r.Post("/toggle", h.Toggle)
		r.Post("/zip", h.DownloadZip)
		r.Post("/convert", h.ConvertAudio)
		r.Post("/reset", h.Reset)
		r.Get("/images/{index}", h.Image)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
