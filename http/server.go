package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/google/uuid"
)

// DefaultShutdownTimeout bounds how long ListenAndServe waits for in-flight
// requests after its context is canceled.
const DefaultShutdownTimeout = 10 * time.Second

// analyzeFailureMessage is the only failure text clients see for errors
// other than EINVALID. Details are logged.
const analyzeFailureMessage = "Failed to analyze article"

// MaxRequestBodySize caps the bytes read from an analyze request body.
const MaxRequestBodySize = 1 << 20

// Server exposes an Analyzer over HTTP.
type Server struct {
	analyzer skeptic.Analyzer
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewServer returns a Server that serves analyzer.
func NewServer(analyzer skeptic.Analyzer, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return skeptic.WrapErrorf(err, skeptic.ECONFIG, "cannot listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. Serve closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	status, body, err := s.analyze(r)

	attrs := []any{
		"request_id", uuid.NewString(),
		"method", r.Method,
		"url", r.URL.Path,
		"status", status,
		"duration", time.Since(begin),
	}
	if err != nil {
		attrs = append(attrs, "code", skeptic.ErrorCode(err), "err", skeptic.ErrorMessageOrText(err))
	}
	s.logger.Info("request", attrs...)

	if status == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", http.MethodPost)
	}
	writeJSON(w, status, body)
}

// analyze returns the response status and body for r, and the error that
// caused a failure status.
func (s *Server) analyze(r *http.Request) (int, any, error) {
	if r.Method != http.MethodPost {
		return http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"},
			skeptic.Errorf(skeptic.EINVALID, "method %s not allowed", r.Method)
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"},
				skeptic.WrapErrorf(err, skeptic.EINVALID, "request body too large")
		}
		return http.StatusBadRequest, errorResponse{Error: "Invalid request body"},
			skeptic.WrapErrorf(err, skeptic.EINVALID, "invalid request body")
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return http.StatusBadRequest, errorResponse{Error: "URL is required"},
			skeptic.Errorf(skeptic.EINVALID, "URL is required")
	}
	if !validURL(rawURL) {
		return http.StatusBadRequest, errorResponse{Error: "Invalid URL"},
			skeptic.Errorf(skeptic.EINVALID, "invalid URL %q", rawURL)
	}

	analysis, err := s.analyzer.Analyze(r.Context(), rawURL)
	if err != nil {
		status := statusFor(err)
		msg := analyzeFailureMessage
		if status == http.StatusBadRequest {
			msg = skeptic.ErrorMessage(err)
		}
		return status, errorResponse{Error: msg}, err
	}
	return http.StatusOK, analysis, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// statusFor maps an application error code to an HTTP status.
func statusFor(err error) int {
	if skeptic.ErrorCode(err) == skeptic.EINVALID {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// validURL reports whether s is an absolute http or https URL with a host.
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
