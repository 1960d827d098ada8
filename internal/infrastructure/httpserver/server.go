package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"ecofin-advisor/internal/application/port/output"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr string
	// MaxConnections caps concurrently accepted connections; 0 means unbounded.
	MaxConnections  int
	ShutdownTimeout time.Duration
}

type Server struct {
	srv      *http.Server
	cfg      ServerConfig
	logger   output.LoggerPort
	listener net.Listener
}

func NewServer(handler http.Handler, cfg ServerConfig, logger output.LoggerPort) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		cfg:    cfg,
		logger: logger.Named("server"),
	}
}

// Listen binds the address. Serve must follow.
func (s *Server) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Serve blocks until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server is running", "addr", s.listener.Addr().String(), "maxConnections", s.cfg.MaxConnections)
		if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down gracefully", "timeout", s.cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("Server closed")
		return nil
	})

	return g.Wait()
}

func (s *Server) Run(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}
