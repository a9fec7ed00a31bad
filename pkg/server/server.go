// Package server is an HTTP server that drains gracefully when the process
// shutdown event fires: it stops accepting connections, lets in-flight
// requests finish and ends open event streams.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/SumoLogic-Labs/graceful-shutdown/pkg/retry"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EventInterval   time.Duration `mapstructure:"event_interval"`
	// DrainDelay keeps the listener open after shutdown is requested so
	// health checks can observe the 503 before connections are refused.
	DrainDelay time.Duration `mapstructure:"drain_delay"`
	Retryer         retry.Retryer `mapstructure:",squash"`
}

type Server struct {
	cfg     Config
	logger  hclog.Logger
	metrics *metrics
	http    *http.Server

	stop  <-chan struct{}
	ready chan struct{}
	addr  string
}

func New(cfg Config, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.EventInterval <= 0 {
		cfg.EventInterval = time.Second
	}
	cfg.Retryer.Logger = logger.Named("listen")
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		ready:   make(chan struct{}),
	}
	s.http = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound listen address. Valid after Ready is closed.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until stop is closed, then shuts the server down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Run(stop <-chan struct{}) error {
	s.stop = stop
	ln, err := s.listen(stop)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.cfg.Addr, err)
	}
	s.addr = ln.Addr().String()
	close(s.ready)
	s.logger.Info("listening", "addr", s.addr)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-stop:
		case <-ctx.Done():
			return nil
		}
		s.metrics.shutdownRequested.Set(1)
		if s.cfg.DrainDelay > 0 {
			s.logger.Info("shutdown requested, failing health checks", "drain_delay", s.cfg.DrainDelay)
			timer := time.NewTimer(s.cfg.DrainDelay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil
			}
		}
		s.logger.Info("draining connections", "timeout", s.cfg.ShutdownTimeout)
		shutdownCtx, cancel := s.shutdownContext()
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("unable to shut down gracefully: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) shutdownContext() (context.Context, context.CancelFunc) {
	if s.cfg.ShutdownTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
}

// listen binds the address, retrying while it is still held by a previous
// instance.
func (s *Server) listen(stop <-chan struct{}) (net.Listener, error) {
	var ln net.Listener
	err := s.cfg.Retryer.Do(stop, func() (error, bool) {
		var err error
		ln, err = net.Listen("tcp", s.cfg.Addr)
		return err, true
	})
	return ln, err
}
