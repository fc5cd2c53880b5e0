// Package server exposes the analysis engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"trade-insights/internal/engine"
	"trade-insights/internal/fetch"
	"trade-insights/internal/journal"
	"trade-insights/internal/logger"
	"trade-insights/internal/results"
	"trade-insights/internal/store"
)

// AnalyzeRequest is the POST /analyze body. Exactly one of FileURL and
// CSVData must be set.
type AnalyzeRequest struct {
	FileURL string `json:"file_url"`
	UserID  string `json:"user_id"`
	CSVData string `json:"csv_data"`
}

// Server ties the HTTP surface to the engine, fetcher and result store.
type Server struct {
	cfg     *store.Config
	engine  *engine.Engine
	fetcher *fetch.Client
	results *results.Store // nil when persistence is disabled
}

// New builds the server. results may be nil.
func New(cfg *store.Config, eng *engine.Engine, fetcher *fetch.Client, res *results.Store) *Server {
	return &Server{cfg: cfg, engine: eng, fetcher: fetcher, results: res}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealthz)
	r.POST("/analyze", s.handleAnalyze)
	return r
}

// HTTPServer wraps the router in an http.Server with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeoutSeconds) * time.Second,
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	hasURL := strings.TrimSpace(req.FileURL) != ""
	hasData := strings.TrimSpace(req.CSVData) != ""
	if hasURL == hasData {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "exactly one of file_url and csv_data must be provided",
		})
		return
	}

	ctx := c.Request.Context()
	csvText := req.CSVData
	if hasURL {
		var err error
		csvText, err = s.fetcher.FetchText(ctx, req.FileURL)
		if err != nil {
			s.writeError(c, err)
			return
		}
	}

	result, err := s.engine.Analyze(ctx, csvText)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if s.results != nil && req.UserID != "" {
		if payload, err := json.Marshal(result); err == nil {
			s.results.SaveAsync(ctx, req.UserID, string(payload))
		}
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps the pipeline's error taxonomy onto HTTP statuses. Every
// journal-shaped failure carries the column hint so the trader can fix the
// export.
func (s *Server) writeError(c *gin.Context, err error) {
	var schemaErr *journal.SchemaError
	var emptyErr *journal.EmptyInputError
	var fetchErr *fetch.SourceFetchError

	switch {
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   schemaErr.Error(),
			"details": journal.ColumnHint,
		})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   emptyErr.Error(),
			"details": journal.ColumnHint,
		})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": fetchErr.Error()})
	default:
		logger.ErrorWithErr(c.Request.Context(), "analysis failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
