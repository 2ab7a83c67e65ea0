package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerkit/pkg/cache"
	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/observability"
	"github.com/matzehuels/bannerkit/pkg/pipeline"
	"github.com/matzehuels/bannerkit/pkg/raster"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		warm bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve banners at any size over HTTP",
		Long: `Start a preview server.

Routes:
  GET /healthz                     liveness probe
  GET /variants                    registered variants
  GET /plan?width=W&height=H       selection outcome for a canvas
  GET /banners                     the manifest
  GET /banners/{W}x{H}.svg|.png    a banner at an arbitrary size
  GET /banners/{name}.svg|.png     a manifest banner

PNG requests share one renderer session and are rendered one at a time.
Rendered images are cached by size and engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			ctx := withLogger(cmd.Context(), c.Logger)

			engine, err := newEngine(cfg, "")
			if err != nil {
				return err
			}
			ttl, err := cfg.CacheTTL()
			if err != nil {
				return err
			}
			store, err := newCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			workDir, err := os.MkdirTemp("", appName+"-serve-*")
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "create work directory")
			}
			defer os.RemoveAll(workDir)

			srv := newServer(serverConfig{
				Registry:  variant.Default(),
				Engine:    engine,
				Generator: cfg.Generator,
				Banners:   cfg.Banners,
				Cache:     cache.NewObserved(store),
				Keyer:     newKeyer(),
				TTL:       ttl,
				WorkDir:   workDir,
				Logger:    c.Logger,
			})
			defer srv.Close()

			if warm {
				err := withSpinner(ctx, c.out, "Starting "+engine.Name()+" renderer...",
					"Renderer ready", "Renderer failed to start", srv.warm)
				if err != nil {
					return err
				}
			}

			printSuccess("Serving banners on %s", StyleLink.Render("http://"+addr))
			printKeyValue("Engine", engine.Name())
			printKeyValue("Cache", cfg.Cache.Backend)
			printKeyValue("Banners", strconv.Itoa(len(cfg.Banners)))

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&warm, "warm", false, "start the renderer before accepting requests")

	return cmd
}

// =============================================================================
// Server
// =============================================================================

// serverConfig wires a preview server.
type serverConfig struct {
	Registry  *variant.Registry
	Engine    raster.Engine
	Generator string
	Banners   []manifest.Canvas
	Cache     cache.Cache
	Keyer     cache.Keyer
	TTL       time.Duration
	WorkDir   string
	Logger    *log.Logger
}

// server answers preview requests. Composition is pure and runs per request;
// the renderer session is shared and guarded by mu.
type server struct {
	cfg    serverConfig
	router chi.Router

	mu      sync.Mutex
	session raster.Session
	driver  *raster.Driver
}

func newServer(cfg serverConfig) *server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/variants", s.handleVariants)
	r.Get("/plan", s.handlePlan)
	r.Route("/banners", func(r chi.Router) {
		r.Get("/", s.handleManifest)
		r.Get("/{file}", s.handleBanner)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.cfg.Logger.Info("starting preview server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down preview server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// Close releases the renderer session.
func (s *server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropSession()
}

// =============================================================================
// Middleware
// =============================================================================

// observe reports requests to the server hooks and logs them.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		defer func() {
			dur := time.Since(start)
			observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), dur)
			s.cfg.Logger.Debug("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", dur.Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newVariantEntries(s.cfg.Registry.List()))
}

func (s *server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Banners)
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	width, err := queryInt(r, "width")
	if err != nil {
		writeError(w, err)
		return
	}
	height, err := queryInt(r, "height")
	if err != nil {
		writeError(w, err)
		return
	}

	c := manifest.Canvas{Name: fmt.Sprintf("%dx%d", width, height), Width: width, Height: height}
	planned, err := pipeline.PlanOne(r.Context(), s.cfg.Registry, c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanEntry(planned))
}

func (s *server) handleBanner(w http.ResponseWriter, r *http.Request) {
	c, ext, err := s.resolveBanner(chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, err)
		return
	}

	var (
		data        []byte
		hit         bool
		contentType string
	)
	switch ext {
	case bkio.ExtSVG:
		data, hit, err = s.document(r.Context(), c)
		contentType = "image/svg+xml"
	case bkio.ExtPNG:
		data, hit, err = s.image(r.Context(), c)
		contentType = "image/png"
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// sizePattern matches ad-hoc banner files such as 1200x630.png.
var sizePattern = regexp.MustCompile(`^([0-9]{1,5})x([0-9]{1,5})$`)

// resolveBanner maps a requested file name to a canvas and extension. Sized
// names like 1200x630.svg take precedence over manifest names.
func (s *server) resolveBanner(file string) (manifest.Canvas, string, error) {
	ext := filepath.Ext(file)
	if ext != bkio.ExtSVG && ext != bkio.ExtPNG {
		return manifest.Canvas{}, "", errNotFound("unsupported banner format %q", ext)
	}
	stem := strings.TrimSuffix(file, ext)

	if m := sizePattern.FindStringSubmatch(stem); m != nil {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		c := manifest.Canvas{Name: stem, Width: w, Height: h}
		if err := c.Validate(); err != nil {
			return manifest.Canvas{}, "", err
		}
		return c, ext, nil
	}
	if c, ok := manifest.Lookup(s.cfg.Banners, stem); ok {
		return c, ext, nil
	}
	return manifest.Canvas{}, "", errNotFound("no banner named %q", stem)
}

// document composes the vector document for c. Browsers understand CSS
// variables, so the palette is never inlined here.
func (s *server) document(ctx context.Context, c manifest.Canvas) ([]byte, bool, error) {
	key := s.cfg.Keyer.DocumentKey(cache.DocumentKeyOpts{
		Width:     c.Width,
		Height:    c.Height,
		Generator: s.cfg.Generator,
	})
	if data, ok, err := s.cfg.Cache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	planned, err := pipeline.PlanOne(ctx, s.cfg.Registry, c, pipeline.ComposeOptions(nil, s.cfg.Generator)...)
	if err != nil {
		return nil, false, err
	}
	data := planned.Document.Bytes()
	s.store(ctx, key, data)
	return data, false, nil
}

// image renders c to PNG through the shared session.
func (s *server) image(ctx context.Context, c manifest.Canvas) ([]byte, bool, error) {
	key := s.cfg.Keyer.ImageKey(cache.ImageKeyOpts{
		Width:     c.Width,
		Height:    c.Height,
		Engine:    s.cfg.Engine.Name(),
		Generator: s.cfg.Generator,
	})
	if data, ok, err := s.cfg.Cache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	planned, err := pipeline.PlanOne(ctx, s.cfg.Registry, c, pipeline.ComposeOptions(s.cfg.Engine, s.cfg.Generator)...)
	if err != nil {
		return nil, false, err
	}
	data, err := s.render(ctx, planned)
	if err != nil {
		return nil, false, err
	}
	s.store(ctx, key, data)
	return data, false, nil
}

func (s *server) store(ctx context.Context, key string, data []byte) {
	if err := s.cfg.Cache.Set(ctx, key, data, s.cfg.TTL); err != nil {
		s.cfg.Logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// render rasterizes one planned banner. Calls are serialized; a session that
// fails to render is dropped and reopened by the next request.
func (s *server) render(ctx context.Context, p pipeline.Planned) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSession(ctx); err != nil {
		return nil, err
	}

	paths := bkio.ArtifactPaths(s.cfg.WorkDir, p.Canvas.Name)
	defer os.Remove(paths.SVG)
	defer os.Remove(paths.PNG)

	if _, err := s.driver.Render(ctx, p.Document, paths.SVG, paths.PNG); err != nil {
		if errors.Is(err, errors.ErrCodeRender) {
			s.dropSession()
		}
		return nil, err
	}
	data, err := os.ReadFile(paths.PNG)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", paths.PNG)
	}
	return data, nil
}

// warm opens the session ahead of the first request.
func (s *server) warm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureSession(ctx)
}

// ensureSession opens the session if needed. Callers hold mu.
func (s *server) ensureSession(ctx context.Context) error {
	if s.session != nil {
		return nil
	}
	// The session outlives the request that happens to open it.
	session, err := s.cfg.Engine.Open(context.WithoutCancel(ctx))
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeEngineUnavailable, err, "start %s", s.cfg.Engine.Name())
		}
		return err
	}
	s.session = session
	s.driver = raster.NewDriver(session, s.cfg.Logger)
	s.cfg.Logger.Info("renderer session started", "engine", s.cfg.Engine.Name())
	return nil
}

// dropSession closes the session. Callers hold mu.
func (s *server) dropSession() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session, s.driver = nil, nil
	return err
}

// =============================================================================
// Responses
// =============================================================================

// errCodeNotFound marks requests for banners that do not exist.
const errCodeNotFound errors.Code = "NOT_FOUND"

func errNotFound(format string, args ...any) error {
	return errors.New(errCodeNotFound, format, args...)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q must be an integer", name)
	}
	return v, nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errCodeNotFound):
		return http.StatusNotFound
	case errors.IsConfiguration(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeEngineUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), map[string]string{
		"code":    string(code),
		"message": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	bkio.WriteJSON(v, w)
}
