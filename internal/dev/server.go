package dev

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webcomp-dev/webcomp/internal/config"
	"github.com/webcomp-dev/webcomp/pkg/routepath"
	"github.com/webcomp-dev/webcomp/pkg/router"
)

// MetricsPath is where the dev server exposes Prometheus metrics when
// dev.metrics is enabled.
const MetricsPath = "/metrics"

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the dev server collectors and is served on
	// MetricsPath. Default: a fresh registry.
	Registry *prometheus.Registry

	// OnReload is called after browsers were told to reload.
	OnReload func(clients int)
}

// Server is the development server: it serves the static directory with a
// single-page fallback, and tells connected browsers to reload when watched
// files change.
type Server struct {
	config   *config.Config
	options  ServerOptions
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *serverMetrics
	watcher  *Watcher
	reload   *ReloadServer
	handler  http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

type serverMetrics struct {
	requests      *prometheus.CounterVec
	changes       *prometheus.CounterVec
	reloadClients prometheus.Gauge
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: router.DefaultNamespace,
			Subsystem: "dev",
			Name:      "requests_total",
			Help:      "Total number of dev server requests by how they were served",
		}, []string{"served"}),
		changes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: router.DefaultNamespace,
			Subsystem: "dev",
			Name:      "file_changes_total",
			Help:      "Total number of detected file changes by type",
		}, []string{"type"}),
		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: router.DefaultNamespace,
			Subsystem: "dev",
			Name:      "reload_clients",
			Help:      "Number of browsers connected for live reload",
		}),
	}
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		config:   cfg,
		options:  options,
		logger:   logger,
		registry: registry,
		metrics:  newServerMetrics(registry),
	}
	s.watcher = NewWatcher(WatcherConfig{
		Paths:  CollectWatchPaths(cfg),
		Logger: logger,
	})
	if cfg.Dev.HotReload {
		s.reload = NewReloadServer(logger, s.metrics.reloadClients)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Watcher returns the file watcher.
func (s *Server) Watcher() *Watcher {
	return s.watcher
}

// Reload returns the reload server, or nil when hot reload is disabled.
func (s *Server) Reload() *ReloadServer {
	return s.reload
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	if s.reload != nil {
		r.Get(ReloadPath, s.reload.HandleWebSocket)
	}
	if s.config.Dev.Metrics {
		r.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Get("/*", s.serveStatic)
	r.Head("/*", s.serveStatic)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("dev request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// serveStatic serves files from the static directory. In history mode,
// extension-less paths under the router root that match no file get the
// root index page.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	clean, err := routepath.Clean(r.URL.Path)
	if err != nil {
		s.metrics.requests.WithLabelValues("rejected").Inc()
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	staticDir := s.config.StaticPath()
	file := filepath.Join(staticDir, filepath.FromSlash(clean))

	if info, err := os.Stat(file); err == nil {
		if info.IsDir() {
			file = filepath.Join(file, "index.html")
			if _, err := os.Stat(file); err != nil {
				s.notFound(w, r, clean)
				return
			}
		}
		s.metrics.requests.WithLabelValues("file").Inc()
		s.serveFile(w, r, file)
		return
	}

	if index, ok := s.fallback(clean); ok {
		s.metrics.requests.WithLabelValues("fallback").Inc()
		s.serveFile(w, r, index)
		return
	}
	s.notFound(w, r, clean)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, clean string) {
	s.metrics.requests.WithLabelValues("not_found").Inc()
	s.logger.Debug("dev file not found", "path", clean)
	http.NotFound(w, r)
}

// fallback returns the index page served for a client-side route.
func (s *Server) fallback(clean string) (string, bool) {
	if router.Mode(s.config.Router.Mode) != router.ModeHistory {
		return "", false
	}
	if filepath.Ext(clean) != "" {
		return "", false
	}

	root := routepath.TrimSlashes(s.config.Router.Root)
	if root != "" && clean != root && !strings.HasPrefix(clean, root+"/") {
		return "", false
	}

	staticDir := s.config.StaticPath()
	for _, dir := range []string{root, ""} {
		index := filepath.Join(staticDir, filepath.FromSlash(dir), "index.html")
		if _, err := os.Stat(index); err == nil {
			return index, true
		}
	}
	return "", false
}

// serveFile serves file, injecting the reload client into HTML pages.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, file string) {
	ext := strings.ToLower(filepath.Ext(file))
	if s.reload == nil || (ext != ".html" && ext != ".htm") {
		f, err := os.Open(file)
		if err != nil {
			http.Error(w, "unreadable file", http.StatusInternalServerError)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			http.Error(w, "unreadable file", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return
	}

	data, err := os.ReadFile(file)
	if err != nil {
		http.Error(w, "unreadable file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(InjectScript(data, ClientScript))
}

// InjectScript inserts script before the last </body>, or appends it when
// the page has no body end tag.
func InjectScript(page []byte, script string) []byte {
	i := bytes.LastIndex(bytes.ToLower(page), []byte("</body>"))
	if i < 0 {
		return append(page[:len(page):len(page)], script...)
	}
	out := make([]byte, 0, len(page)+len(script))
	out = append(out, page[:i]...)
	out = append(out, script...)
	return append(out, page[i:]...)
}

// Start serves on the configured address and watches files until ctx is
// done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.DevAddress())
	if err != nil {
		return fmt.Errorf("dev server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start with a caller-provided listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.running = true
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.watcher.OnChange(s.handleChanges)
	go s.watcher.Start(ctx)

	s.logger.Info("dev server running",
		"url", "http://"+ln.Addr().String(),
		"static", s.config.StaticPath(),
		"mode", s.config.Router.Mode,
		"hot_reload", s.reload != nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server: %w", err)
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.watcher.Stop()
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// handleChanges reloads stylesheets in place when only CSS changed, and
// reloads the page otherwise.
func (s *Server) handleChanges(changes []Change) {
	cssOnly := true
	for _, c := range changes {
		s.metrics.changes.WithLabelValues(c.Type.String()).Inc()
		if c.Type != ChangeCSS || c.Removed {
			cssOnly = false
		}
		s.logger.Info("file changed", "path", c.Path, "type", c.Type.String(), "removed", c.Removed)
	}
	if s.reload == nil {
		return
	}

	if cssOnly {
		for _, c := range changes {
			rel, err := filepath.Rel(s.config.StaticPath(), c.Path)
			if err != nil {
				rel = filepath.Base(c.Path)
			}
			s.reload.NotifyCSS(filepath.ToSlash(rel))
		}
	} else {
		s.reload.NotifyReload()
	}

	if s.options.OnReload != nil {
		s.options.OnReload(s.reload.ClientCount())
	}
}
