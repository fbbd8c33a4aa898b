// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP API: résumé upload, submission history,
// health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/cv-extractor/internal/decode"
	"github.com/pdiddy/cv-extractor/internal/pipeline"
	"github.com/pdiddy/cv-extractor/internal/store"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// Processor runs an uploaded document through the pipeline.
// *pipeline.Processor implements it.
type Processor interface {
	Process(ctx context.Context, doc types.Document) (types.Submission, error)
}

// RecordReader serves the submission history. *store.Store implements it.
type RecordReader interface {
	List(ctx context.Context, opts store.ListOptions) ([]types.Submission, error)
	Get(ctx context.Context, id string) (types.Submission, error)
}

// Server provides HTTP endpoints for cv-extractor.
type Server struct {
	echo      *echo.Echo
	processor Processor
	records   RecordReader
	metrics   *Metrics
	logger    zerolog.Logger
	config    types.ServerConfig
}

// Option configures a Server.
type Option func(*Server)

// WithRecords enables the history endpoints.
func WithRecords(r RecordReader) Option {
	return func(s *Server) { s.records = r }
}

// WithMetrics replaces the server's own metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a server. Zero host, port and upload limit take the defaults
// of types.DefaultConfig.
func New(proc Processor, logger zerolog.Logger, cfg types.ServerConfig, opts ...Option) (*Server, error) {
	if proc == nil {
		return nil, errors.New("processor cannot be nil")
	}
	def := types.DefaultConfig().Server
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		processor: proc,
		logger:    logger,
		config:    cfg,
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.MaxUploadBytes, 10) + "B"))

	s.registerRoutes()
	return s, nil
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// Let the error handler write the status before it is logged.
			c.Error(err)
		}

		s.logger.Info().
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Int("status", c.Response().Status).
			Dur("duration", time.Since(start)).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("http request")
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/upload-cv", s.handleUpload)
	v1.GET("/records", s.handleListRecords)
	v1.GET("/records/:id", s.handleGetRecord)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Handler exposes the router, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start listens on Addr and blocks until the server stops. After Shutdown
// it returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.Addr()).Msg("starting http server")
	return s.echo.Start(s.Addr())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// uploadMediaType resolves the media type of an uploaded part. A declared
// PDF or DOCX type wins; a missing or generic type falls back to the
// filename extension.
func uploadMediaType(declared, filename string) types.MediaType {
	mt := types.ParseMediaType(declared)
	if mt.IsUploadable() {
		return mt
	}
	if mt == "" || mt == "application/octet-stream" {
		if ext := types.MediaTypeFromFilename(filename); ext.IsUploadable() {
			return ext
		}
	}
	return mt
}

func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		s.metrics.Uploads.WithLabelValues(uploadRejected).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}

	mt := uploadMediaType(fh.Header.Get(echo.HeaderContentType), fh.Filename)
	if !mt.IsUploadable() {
		s.metrics.Uploads.WithLabelValues(uploadRejected).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "file must be PDF or DOCX")
	}

	f, err := fh.Open()
	if err != nil {
		s.metrics.Uploads.WithLabelValues(uploadError).Inc()
		return fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.metrics.Uploads.WithLabelValues(uploadError).Inc()
		return fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}

	start := time.Now()
	sub, err := s.processor.Process(c.Request().Context(), types.Document{
		Filename:  fh.Filename,
		MediaType: mt,
		Data:      data,
	})
	s.metrics.ProcessDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, decode.ErrUnsupportedMediaType):
		s.metrics.Uploads.WithLabelValues(uploadRejected).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "file must be PDF or DOCX")
	case errors.Is(err, pipeline.ErrContentUnusable):
		s.metrics.Uploads.WithLabelValues(uploadUnusable).Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no usable text could be extracted from the file")
	case err != nil:
		s.metrics.Uploads.WithLabelValues(uploadError).Inc()
		s.logger.Error().Err(err).Str("file", fh.Filename).Msg("processing upload")
		return echo.NewHTTPError(http.StatusInternalServerError, "processing failed")
	}

	s.metrics.Uploads.WithLabelValues(uploadOK).Inc()
	s.metrics.observeRecord(sub.Record)
	if sub.ID != "" {
		c.Response().Header().Set("X-Submission-Id", sub.ID)
	}
	return c.JSON(http.StatusOK, sub.Record)
}

func (s *Server) handleListRecords(c echo.Context) error {
	if s.records == nil {
		return echo.NewHTTPError(http.StatusNotFound, "submission history is disabled")
	}

	var opts store.ListOptions
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		opts.Limit = n
	}
	opts.IncompleteOnly = c.QueryParam("incomplete") == "true"

	subs, err := s.records.List(c.Request().Context(), opts)
	if err != nil {
		return fmt.Errorf("listing submissions: %w", err)
	}
	if subs == nil {
		subs = []types.Submission{}
	}
	return c.JSON(http.StatusOK, subs)
}

func (s *Server) handleGetRecord(c echo.Context) error {
	if s.records == nil {
		return echo.NewHTTPError(http.StatusNotFound, "submission history is disabled")
	}

	sub, err := s.records.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "submission not found")
	}
	if err != nil {
		return fmt.Errorf("fetching submission: %w", err)
	}
	return c.JSON(http.StatusOK, sub)
}
