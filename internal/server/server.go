// Package server exposes the viewer over HTTP: POST a JSON document and get
// back the rendered HTML page. Parse failures still return 200 with the
// diagnostic view; only transport-level problems are HTTP errors.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	apperrors "github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/htmldoc"
	"github.com/mcncl/jsonview/internal/viewer"
)

// maxBodyBytes caps the accepted document size.
const maxBodyBytes = 32 << 20

// Server hosts the render endpoint.
type Server struct {
	logger log.Logger
	srv    *http.Server
}

// New builds a Server listening on addr.
func New(addr string, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Server{logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return apperrors.NewServerError("shutdown failed", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return apperrors.NewServerError("listen failed", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		level.Warn(s.logger).Log("msg", "failed to read request body", "err", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result := viewer.Process(string(body))
	title := r.URL.Query().Get("title")
	if title == "" {
		title = result.Title
	}
	page := htmldoc.Document(title, result.Body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, page); err != nil {
		level.Warn(s.logger).Log("msg", "failed to write response", "err", err)
		return
	}

	level.Info(s.logger).Log(
		"msg", "rendered document",
		"bytes", len(body),
		"parse_failed", result.Failed,
		"duration", time.Since(start),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}
