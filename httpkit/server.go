package httpkit

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dockit/platform/config"
	"dockit/platform/logger"
)

// Server is a thin wrapper over chi + the stdlib http server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *http.Server
}

// NewServer builds the server from config; opts receive the mux so
// callers can mount routes and middleware
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &http.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns a Router facade over the internal mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it closes or ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.srv.Shutdown(shutCtx)
		<-errc
		return err
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
