// Package httpapi serves lesson generation and the shared library over
// HTTP for the companion website.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/render"
)

// Config for the HTTP server.
type Config struct {
	Addr         string        `yaml:"addr"`
	StaticDir    string        `yaml:"static_dir"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// DefaultConfig listens on :8000.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8000",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		MaxBodyBytes: 1 << 20,
	}
}

// Deps are the services behind the endpoints. Library may be nil.
type Deps struct {
	Lessons  *lesson.Service
	Renderer *render.Renderer
	Library  *library.Library
	Log      *logger.Logger
	Version  string
}

// Server is the HTTP front-end.
type Server struct {
	cfg  Config
	deps Deps
	log  *logger.Logger
	now  func() time.Time
	srv  *http.Server
}

// New builds a Server. Call Handler for tests or ListenAndServe to run it.
func New(cfg Config, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.New(nil, deps.Log)
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	s := &Server{cfg: cfg, deps: deps, log: deps.Log.With("component", "httpapi"), now: time.Now}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler is the routed, CORS-wrapped, logged handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/lesson", s.generate).Methods(http.MethodPost)
	api.HandleFunc("/pdf", s.pdf).Methods(http.MethodPost)
	api.HandleFunc("/html", s.html).Methods(http.MethodPost)
	api.HandleFunc("/lessons", s.listLessons).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{id}", s.getLesson).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.stats).Methods(http.MethodGet)

	if s.cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// ListenAndServe runs until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return s.srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("http request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status,
			"bytes", rec.bytes, "latency_ms", time.Since(start).Milliseconds())
	})
}
