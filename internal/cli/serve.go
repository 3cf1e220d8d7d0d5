package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/routemap/pkg/errors"
	rio "github.com/matzehuels/routemap/pkg/io"
	"github.com/matzehuels/routemap/pkg/observability"
	"github.com/matzehuels/routemap/pkg/pipeline"
)

// defaultMaxBody caps the size of an uploaded edge list.
const defaultMaxBody = 4 << 20

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		rf      renderFlags
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route rendering over HTTP",
		Long: `Start an HTTP server. POST a CSV edge list to /route?from=A&to=B&format=png
to receive the rendered graph; route cost and path are returned in the
X-Route-Cost and X-Route-Path headers.`,
		Example: `  routemap serve --addr :8080
  curl --data-binary @cities.csv 'localhost:8080/route?from=A&to=D' -o graph.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := rf.options(cmd)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(c.Logger, opts, maxBody),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, c.Logger)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", defaultMaxBody, "maximum request body size in bytes")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// newRouter builds the HTTP API. defaults supplies the render settings;
// requests may override format and seed only.
func newRouter(logger *log.Logger, defaults pipeline.Options, maxBody int64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	h := &routeHandler{defaults: defaults, maxBody: maxBody}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/route", h.serveRoute)
	return r
}

// requestLogger attaches a request-scoped logger to the context and logs
// each completed request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			reqLogger := logger.With("request_id", middleware.GetReqID(ctx))
			ctx = withLogger(ctx, reqLogger)

			observability.Server().OnRequest(ctx, r.Method, r.URL.Path)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)
			observability.Server().OnResponse(ctx, r.Method, r.URL.Path, status, duration)
			reqLogger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", duration)
		})
	}
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type routeHandler struct {
	defaults pipeline.Options
	maxBody  int64
}

func (h *routeHandler) serveRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFromContext(ctx)
	q := r.URL.Query()

	opts := h.defaults
	opts.Formats = nil
	opts.From = strings.TrimSpace(q.Get("from"))
	opts.To = strings.TrimSpace(q.Get("to"))
	if opts.From == "" || opts.To == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "query parameters from and to are required"))
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "seed must be an unsigned integer"))
			return
		}
		opts.Seed = seed
	}

	g, err := rio.ReadCSV(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		logger.Warn("rejected edge list", "error", err)
		writeError(w, err)
		return
	}

	res := pipeline.NewRunner(logger).Query(ctx, g, opts.From, opts.To)
	data, err := pipeline.RenderArtifact(ctx, g, res, format, opts)
	if err != nil {
		logger.Error("render failed", "format", format, "error", err)
		writeError(w, err)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", contentTypes[format])
	hdr.Set("X-Render-ID", uuid.NewString())
	hdr.Set("X-Route-Found", strconv.FormatBool(res.Found))
	if res.Found {
		hdr.Set("X-Route-Cost", strconv.Itoa(res.Cost))
		hdr.Set("X-Route-Path", res.String())
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps input errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	var maxErr *http.MaxBytesError
	switch {
	case errors.IsInputError(err):
		status = http.StatusBadRequest
	case stderrors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
		code = errors.ErrCodeInvalidInput
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: errors.UserMessage(err), Code: string(code)})
}
