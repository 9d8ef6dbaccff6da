// Package api serves live run progress over HTTP while a generation run is
// in flight. The server is optional and never participates in generation.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
)

// StatusSource yields a point-in-time view of the running generation.
type StatusSource interface {
	Snapshot() models.Run
}

// Server exposes run counters for dashboards and scripts polling progress.
type Server struct {
	router *gin.Engine
	source StatusSource
	logger *zap.Logger
}

// NewServer creates the status server around a snapshot source.
func NewServer(source StatusSource, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		source: source,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	run := s.source.Snapshot()

	progress := 0.0
	if run.Requested > 0 {
		progress = float64(run.Generated) / float64(run.Requested)
	}

	c.JSON(http.StatusOK, gin.H{
		"run":      run,
		"progress": progress,
	})
}

// Router returns the underlying engine, used by tests to drive handlers
// without a listener.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server on addr. It blocks, so callers run it in a
// goroutine; the process exiting at end of run tears it down.
func (s *Server) Start(addr string) error {
	s.logger.Info("Status server starting", zap.String("address", addr))
	return s.router.Run(addr)
}
