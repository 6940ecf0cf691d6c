// Package server exposes the roster consolidation pipeline over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/ukaji3/rostermerge-go/internal/config"
	"github.com/ukaji3/rostermerge-go/internal/logger"
	"github.com/ukaji3/rostermerge-go/pkg/rostermerge"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Server is the HTTP front end of the extraction pipeline.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	opts   rostermerge.Options
	log    *logger.Logger
	sem    *semaphore.Weighted
}

// New creates a server with its routes registered.
func New(cfg *config.Config, opts rostermerge.Options, log *logger.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router: gin.New(),
		cfg:    cfg,
		opts:   opts,
		log:    log,
		sem:    semaphore.NewWeighted(int64(cfg.Server.MaxConcurrent)),
	}
	s.router.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	s.router.Use(gin.Recovery(), requestID())
	if cfg.Server.GinMode != gin.TestMode {
		s.router.Use(gin.Logger())
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server running on http://localhost:%s", s.cfg.Server.Port)
		s.log.Info("POST /extract - Upload Excel file to extract tables")
		s.log.Info("GET /health - Health check")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.Timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() {
	s.router.POST("/extract", s.handleExtract)
	s.router.GET("/health", s.handleHealth)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type conversion struct {
	res  *rostermerge.Result
	data []byte
	err  error
}

// handleExtract converts an uploaded workbook and returns the combined one
func (s *Server) handleExtract(c *gin.Context) {
	reqID := c.GetString(requestIDKey)

	header, err := c.FormFile("file")
	if err != nil {
		s.log.Debug("[%s] no file uploaded: %v", reqID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": `No file uploaded. Use form-data with key "file".`})
		return
	}

	limit := s.cfg.Server.MaxUploadBytes
	if header.Size > limit {
		s.log.Warn("[%s] file too large: %s (%d bytes)", reqID, header.Filename, header.Size)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File size (%.1f MB) exceeds the %d MB limit", float64(header.Size)/(1024*1024), limit/(1024*1024))})
		return
	}

	file, err := header.Open()
	if err != nil {
		s.log.Error("[%s] failed to open upload: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		s.log.Error("[%s] failed to read upload: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Server.Timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.log.Warn("[%s] no conversion slot available: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server busy, try again later"})
		return
	}

	start := time.Now()
	done := make(chan conversion, 1)
	go func() {
		defer s.sem.Release(1)
		var buf bytes.Buffer
		res, err := rostermerge.Process(bytes.NewReader(data), &buf, s.opts)
		done <- conversion{res: res, data: buf.Bytes(), err: err}
	}()

	// On timeout the conversion keeps running and holds its slot until it
	// returns; Process has no cancellation point.
	var out conversion
	select {
	case <-ctx.Done():
		s.log.Error("[%s] processing %s timed out after %s", reqID, header.Filename, s.cfg.Server.Timeout)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Processing timed out"})
		return
	case out = <-done:
	}

	if out.err != nil {
		s.log.Error("[%s] error processing %s: %v", reqID, header.Filename, out.err)
		c.JSON(statusFor(out.err), gin.H{"error": errorMessage(out.err)})
		return
	}

	for _, w := range out.res.Warnings {
		s.log.Warn("[%s] %v", reqID, w)
	}
	s.log.Info("[%s] %s: %d tables, %d rows in %s", reqID, header.Filename,
		out.res.Summary.Tables, out.res.Summary.Rows, time.Since(start).Round(time.Millisecond))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.Extract.OutputFilename))
	c.Header("X-Tables-Found", strconv.Itoa(out.res.Summary.Tables))
	c.Header("X-Rows-Written", strconv.Itoa(out.res.Summary.Rows))
	c.Data(http.StatusOK, xlsxContentType, out.data)
}

func statusFor(err error) int {
	if errors.Is(err, rostermerge.ErrInputMissing) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, rostermerge.ErrNoTablesFound):
		return "No tables found by header names"
	case errors.Is(err, rostermerge.ErrInvalidFormat):
		return "Failed to process Excel file: not a valid xlsx workbook"
	case errors.Is(err, rostermerge.ErrSerialization):
		return "Failed to process Excel file: could not write output"
	}
	return "Failed to process Excel file"
}
