// Package dashboard serves the interactive population dashboard over HTTP.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/anrid/population-stats/pkg/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var assets embed.FS

// MaxTableRows caps the rows rendered in the filtered data table. The
// exports always contain every row.
const MaxTableRows = 5000

// Server renders the dashboard for a data source.
type Server struct {
	source   stats.Source
	dataset  *stats.Dataset
	defaults []string
	logger   *zap.Logger

	tmpl   *template.Template
	router *mux.Router
}

// NewServer creates a dashboard server. defaults is the country selection
// shown when a request names none.
func NewServer(src stats.Source, ds *stats.Dataset, defaults []string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(defaults) == 0 {
		defaults = stats.DefaultCountries
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		source:   src,
		dataset:  ds,
		defaults: defaults,
		logger:   logger,
		tmpl:     tmpl,
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/view", s.serveView).Methods(http.MethodGet)
	r.HandleFunc("/export.csv", s.serveCSV).Methods(http.MethodGet)
	r.HandleFunc("/export.xlsx", s.serveXLSX).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.serveHealth).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	s.router = r
}

// Handler returns the HTTP handler of the dashboard.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// ready is called with the base URL once the listener is bound.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(url string)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Minute,
	}

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	s.logger.Info("Serving dashboard", zap.String("url", url))
	if ready != nil {
		ready(url)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// compute resolves the request's selection into a View.
func (s *Server) compute(r *http.Request) (*stats.View, error) {
	q, err := parseQuery(r.URL.Query(), s.defaults)
	if err != nil {
		return nil, &badRequestError{err}
	}
	return stats.Compute(r.Context(), s.source, q)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	p := s.newPage()

	v, err := s.compute(r)
	switch {
	case errors.Is(err, stats.ErrNoCountries):
		p.Notice = "Select at least one country to see the dashboard."
	case err != nil:
		p.Error = err.Error()
		s.renderPage(w, r, statusFor(err), p)
		return
	default:
		if err := p.fill(v); err != nil {
			p.Error = err.Error()
			s.renderPage(w, r, http.StatusInternalServerError, p)
			return
		}
	}

	s.renderPage(w, r, http.StatusOK, p)
}

func (s *Server) serveView(w http.ResponseWriter, r *http.Request) {
	v, err := s.compute(r)
	if err != nil {
		s.writeJSON(w, r, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) serveCSV(w http.ResponseWriter, r *http.Request) {
	v, err := s.compute(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="population.csv"`)
	if err := stats.WriteCSV(w, v.Rows); err != nil {
		s.requestLogger(r).Error("Write CSV export", zap.Error(err))
	}
}

func (s *Server) serveXLSX(w http.ResponseWriter, r *http.Request) {
	v, err := s.compute(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="population.xlsx"`)
	if err := stats.WriteXLSX(w, v.Rows); err != nil {
		s.requestLogger(r).Error("Write XLSX export", zap.Error(err))
	}
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, p *page) {
	if status >= http.StatusInternalServerError {
		s.requestLogger(r).Error("Dashboard failed", zap.String("error", p.Error))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", p); err != nil {
		s.requestLogger(r).Error("Render page", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.requestLogger(r).Error("Encode JSON", zap.Error(err))
		status = http.StatusInternalServerError
		data = []byte(`{"error":"could not encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.requestLogger(r).Error("Write JSON", zap.Error(err))
	}
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// statusFor maps a compute error to an HTTP status.
func statusFor(err error) int {
	var bad *badRequestError
	switch {
	case errors.As(err, &bad),
		errors.Is(err, stats.ErrNoCountries),
		errors.Is(err, stats.ErrUnknownCountry):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
