package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/adapters/prometheus"
	"github.com/emiliopalmerini/brandkit/internal/branding"
)

type Server struct {
	router        *http.ServeMux
	handler       http.Handler
	port          int
	defaultTenant string
	branding      *branding.Service
	metrics       *prometheus.Metrics
	hub           *PreviewHub
	logger        *zap.Logger
	unsubscribe   func()
}

func NewServer(
	port int,
	defaultTenant string,
	svc *branding.Service,
	metrics *prometheus.Metrics,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = prometheus.NewMetrics()
	}
	s := &Server{
		router:        http.NewServeMux(),
		port:          port,
		defaultTenant: defaultTenant,
		branding:      svc,
		metrics:       metrics,
		hub:           NewPreviewHub(metrics),
		logger:        logger,
	}
	s.setupRoutes()
	s.handler = metrics.Middleware(s.logRequests(s.recoverPanics(s.router)))
	s.unsubscribe = svc.Subscribe(s.broadcastUpdate)
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("GET /metrics", s.metrics.Handler())

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /branding", s.handleBranding)
	s.router.HandleFunc("POST /branding", s.handleBrandingSave)
	s.router.HandleFunc("GET /branding/theme.css", s.handleThemeCSS)
	s.router.HandleFunc("GET /settings", s.handleSettingsPage)

	// Palette API
	s.router.HandleFunc("GET /api/palette", s.handleAPIPalette)
	s.router.HandleFunc("GET /api/palette/random", s.handleAPIRandomPalette)
	s.router.HandleFunc("GET /api/palette/presets", s.handleAPIPresets)

	// Settings API
	s.router.HandleFunc("GET /api/settings", s.handleAPIGetSettings)
	s.router.HandleFunc("POST /api/settings", s.handleAPISaveSettings)
	s.router.HandleFunc("GET /api/settings/revisions", s.handleAPIRevisions)
	s.router.HandleFunc("POST /api/settings/revisions/{id}/restore", s.handleAPIRestoreRevision)

	// Live preview
	s.router.HandleFunc("GET /ws/branding", s.handleBrandingWS)
}

// Handler is the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub exposes the live preview connection manager.
func (s *Server) Hub() *PreviewHub {
	return s.hub
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("url", fmt.Sprintf("http://localhost:%d", s.port)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Close detaches from the branding service and drops preview connections.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.hub.CloseAll()
}
