/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: server.go
Description: HTTP server for ApkScope. Wires the upload and analyze endpoints onto
a gorilla/mux router with permissive CORS and request logging, and runs the server
with graceful shutdown.
*/

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/kleascm/apkscope/pkg/analysis"
	"github.com/kleascm/apkscope/pkg/config"
	"github.com/kleascm/apkscope/pkg/logging"
	"github.com/kleascm/apkscope/pkg/storage"
)

// shutdownGrace is how long in-flight requests get to finish on shutdown
const shutdownGrace = 10 * time.Second

// Server hosts the ApkScope HTTP API
type Server struct {
	config       *config.Config
	logger       *logging.Logger
	staging      *storage.Staging
	orchestrator *analysis.Orchestrator
	httpServer   *http.Server
}

// NewServer creates a server over the given staging area and orchestrator
func NewServer(cfg *config.Config, logger *logging.Logger, staging *storage.Staging, orchestrator *analysis.Orchestrator) *Server {
	s := &Server{
		config:       cfg,
		logger:       logger,
		staging:      staging,
		orchestrator: orchestrator,
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the full middleware-wrapped handler chain
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPut,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
	})

	return s.requestLogging(c.Handler(router))
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully. Returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("ApkScope server listening", map[string]interface{}{
		"address":     s.config.Address(),
		"staging_dir": s.staging.Dir(),
		"max_upload":  s.config.MaxUploadSize,
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
