// Package server provides the HTTP REST API for the match engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/accuracy"
	"github.com/talentbridge/matchengine/internal/mining"
	"github.com/talentbridge/matchengine/internal/notify"
	"github.com/talentbridge/matchengine/internal/ranking"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	log        *zap.Logger

	ranker  *ranking.Service
	miner   *mining.Service
	matcher *notify.Matcher
	tracker *accuracy.Tracker
}

// Config holds server configuration
type Config struct {
	ListenAddr string
}

// New creates a new server instance around the wired services
func New(cfg Config, ranker *ranking.Service, miner *mining.Service, matcher *notify.Matcher, tracker *accuracy.Tracker, log *zap.Logger) *Server {
	s := &Server{
		log:     log,
		ranker:  ranker,
		miner:   miner,
		matcher: matcher,
		tracker: tracker,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Ranking and analysis endpoints
	mux.HandleFunc("POST /jobs/{id}/rank", s.handleRankJob)
	mux.HandleFunc("POST /jobs/{id}/compare", s.handleCompare)
	mux.HandleFunc("GET /jobs/{job_id}/candidates/{candidate_id}/analysis", s.handleAnalysis)

	// Proactive mining endpoints
	mux.HandleFunc("GET /companies/{id}/demand-profile", s.handleDemandProfile)
	mux.HandleFunc("POST /companies/{id}/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /companies/{id}/recommendations", s.handleRecommendations)

	// Notification endpoint
	mux.HandleFunc("POST /jobs/{id}/notify", s.handleNotify)

	// Accuracy endpoints
	mux.HandleFunc("GET /users/{id}/accuracy", s.handleAccuracy)
	mux.HandleFunc("GET /users/{id}/accuracy/trend", s.handleAccuracyTrend)
	mux.HandleFunc("GET /accuracy/system", s.handleSystemAccuracy)

	addr := cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // ranking a large pool takes a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the route tree for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until interrupted
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
