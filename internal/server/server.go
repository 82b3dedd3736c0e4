// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves comparisons over HTTP.
//
//	POST /v1/compare  run a comparison and return its report
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sfeek/bootstat/compare"
	"github.com/sfeek/bootstat/internal/config"
	"github.com/sfeek/bootstat/report"
	"github.com/sfeek/bootstat/sampleio"
)

// RequestIDHeader carries the request ID. A client-supplied ID is kept,
// otherwise one is generated.
const RequestIDHeader = "X-Request-ID"

// A Server runs comparisons for HTTP clients.
type Server struct {
	cfg      config.Server
	defaults compare.Config
	log      *zap.Logger
	metrics  *metrics
	router   *gin.Engine
}

// New returns a server using defaults for settings a request leaves
// out. It does not start listening.
func New(cfg config.Server, defaults compare.Config, log *zap.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		defaults: defaults,
		log:      log,
		metrics:  newMetrics(reg),
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestID, s.observe)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	s.router.POST("/v1/compare", s.limitBody, s.handleCompare)
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done,
// then shuts down, waiting for in-flight comparisons up to the write
// timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	hs := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", hs.Addr))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	code := c.Writer.Status()
	elapsed := time.Since(start)
	s.metrics.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	s.metrics.latency.WithLabelValues(route).Observe(elapsed.Seconds())
	s.log.Info("request",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", code),
		zap.Duration("elapsed", elapsed),
	)
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CompareRequest is the body of POST /v1/compare. Each sample is given
// either as numbers or as free-form text; text wins when both are set.
// Unset settings take the server's defaults. Iterations is the number
// of resamples, a multiple of 1000.
type CompareRequest struct {
	A     []float64 `json:"a"`
	B     []float64 `json:"b"`
	TextA string    `json:"text_a"`
	TextB string    `json:"text_b"`

	Paired     *bool    `json:"paired"`
	Tail       string   `json:"tail" binding:"omitempty,oneof=one two"`
	Confidence *float64 `json:"confidence" binding:"omitempty,gte=0,lte=100"`
	Iterations int      `json:"iterations" binding:"omitempty,gte=1000,lte=9999000"`
	Seed       *int64   `json:"seed"`
	Format     string   `json:"format" binding:"omitempty,oneof=text csv json yaml yml html"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (s *Server) fail(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
}

var contentTypes = map[report.Format]string{
	report.FormatText: "text/plain; charset=utf-8",
	report.FormatCSV:  "text/csv; charset=utf-8",
	report.FormatJSON: "application/json; charset=utf-8",
	report.FormatYAML: "application/yaml; charset=utf-8",
	report.FormatHTML: "text/html; charset=utf-8",
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.fail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	cfg, format, err := s.settings(&req)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	a, b := req.A, req.B
	if req.TextA != "" {
		a = sampleio.Parse(req.TextA)
	}
	if req.TextB != "" {
		b = sampleio.Parse(req.TextB)
	}

	paired := strconv.FormatBool(cfg.Paired)
	r, err := compare.Run(c.Request.Context(), a, b, cfg)
	switch {
	case errors.Is(err, compare.ErrInputValidation):
		s.metrics.compares.WithLabelValues(paired, "invalid").Inc()
		s.fail(c, http.StatusBadRequest, err)
		return
	case err != nil:
		s.metrics.compares.WithLabelValues(paired, "error").Inc()
		s.fail(c, http.StatusServiceUnavailable, err)
		return
	}
	s.metrics.compares.WithLabelValues(paired, "ok").Inc()
	streams := 2
	if cfg.Paired {
		streams = 3
	}
	s.metrics.resamples.Add(float64(cfg.Iterations * streams))
	s.metrics.warnings.Add(float64(len(r.Warnings)))
	for _, w := range r.Warnings {
		s.log.Debug("report warning", zap.String("request_id", c.GetString("request_id")), zap.Error(w))
	}

	c.Header("Content-Type", contentTypes[format])
	c.Status(http.StatusOK)
	if err := report.Write(c.Writer, report.Build(r), format, report.Options{}); err != nil {
		s.log.Error("writing report", zap.String("request_id", c.GetString("request_id")), zap.Error(err))
	}
}

// settings merges the request's settings over the server defaults. The
// report format defaults to JSON.
func (s *Server) settings(req *CompareRequest) (compare.Config, report.Format, error) {
	cfg := s.defaults
	if req.Paired != nil {
		cfg.Paired = *req.Paired
	}
	if req.Tail != "" {
		t, err := compare.ParseTail(req.Tail)
		if err != nil {
			return cfg, 0, err
		}
		cfg.Tail = t
	}
	if req.Confidence != nil {
		cfg.Confidence = *req.Confidence
	}
	if req.Iterations != 0 {
		cfg.Iterations = req.Iterations
	}
	if req.Seed != nil {
		cfg.Seed = req.Seed
	}

	format := report.FormatJSON
	if req.Format != "" {
		f, err := report.ParseFormat(req.Format)
		if err != nil {
			return cfg, 0, err
		}
		format = f
	}
	return cfg, format, nil
}
