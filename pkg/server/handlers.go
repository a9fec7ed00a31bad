package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SumoLogic-Labs/graceful-shutdown/pkg/stream"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /events", s.events)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Hello, World!")
}

// healthz fails once shutdown was requested so load balancers stop routing here.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.stopping() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintln(w, "ok")
}

// events streams server-sent events until the client disconnects or shutdown
// is requested. At shutdown the stream simply ends and the response completes.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	id := uuid.NewString()
	logger := s.logger.With("stream", id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Stream-Id", id)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()
	logger.Debug("stream opened")

	done, cancel := s.streamDone(r.Context())
	defer cancel()
	ticks := stream.Ticks(done, s.cfg.EventInterval)
	for n := range stream.TakeUntil(done, ticks) {
		if _, err := fmt.Fprintf(w, "data: event %d\n\n", n); err != nil {
			logger.Debug("stream write failed", "error", err)
			return
		}
		flusher.Flush()
		s.metrics.events.Inc()
	}
	logger.Debug("stream closed", "shutdown", s.stopping())
}

// streamDone returns a channel closed when shutdown is requested, the request
// ends or cancel is called, whichever comes first.
func (s *Server) streamDone(parent context.Context) (<-chan struct{}, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx.Done(), cancel
}

func (s *Server) stopping() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}
