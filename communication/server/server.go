package server

import (
	"context"
	"encoding/json"
	"errors"
	"isolation/communication"
	"isolation/engine"
	"isolation/experiments/metrics"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server lets spectators follow the games of a tournament. It serves the
// latest position over HTTP, streams moves over a websocket, and exposes the
// Prometheus metrics. It is an engine.Observer.
type Server struct {
	hub      *Hub
	router   chi.Router
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	latest *communication.Message
}

// New builds the server. metricsHandler is mounted on /metrics when not nil.
func New(metricsHandler http.Handler) *Server {
	s := &Server{
		hub:      NewHub(),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/games/latest", s.handleLatest)
	r.Get("/ws", s.handleWS)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) OnMove(update engine.Update) {
	msg := communication.NewMoveMessage(update)
	s.mu.Lock()
	s.latest = &msg
	s.mu.Unlock()
	s.hub.Broadcast(msg)
}

func (s *Server) OnGameOver(result metrics.GameMetric) {
	s.hub.Broadcast(communication.NewGameOverMessage(result))
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("serving spectators and metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(latest)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{send: make(chan []byte, 64)}
	s.hub.register(c)

	go func() {
		defer conn.Close()
		if err := writeLoop(conn, c.send); err != nil {
			log.Debug().Err(err).Msg("spectator write failed")
		}
	}()

	// Spectators only listen, reading detects the disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.unregister(c)
			return
		}
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
