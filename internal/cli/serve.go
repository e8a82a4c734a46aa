package cli

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/buildinfo"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/observability"
	"github.com/matzehuels/heatcal/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	overrides
	addr string
}

// serveCommand creates the serve command.
//
// Routes:
//   - /years/{year}: HTML page with the calendar; the glyphs link to the
//     neighbouring years
//   - /years/{year}.svg, /years/{year}.json: the scene alone
//   - /metrics: Prometheus metrics
//   - /healthz: liveness
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calendar heatmaps over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	opts.overrides.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetHTTPHooks(prom)
	defer observability.Reset()

	runner, set, err := c.openRunner(ctx, cfg, opts.refresh)
	if err != nil {
		return err
	}
	defer set.Close()

	srv := &server{
		runner:   runner,
		logger:   logger,
		gatherer: reg,
		year:     func() int { return cfg.SelectedYear(c.now()) },
		title:    cfg.Title,
	}
	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()
	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(opts.addr)+"/"))
	printDetail("%d dataset(s), metrics on /metrics", len(set.Datasets()))

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", opts.addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return httpSrv.Shutdown(shutdownCtx)
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// server renders one scene per request. Navigation is plain links, so the
// server keeps no view state.
type server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	gatherer prometheus.Gatherer
	year     func() int
	title    string
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.accessLog)
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, yearURL(s.year()), http.StatusFound)
	})
	r.Get("/years/{year}", s.handleYear)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok %s\n", buildinfo.String())
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

func yearURL(year int) string { return "/years/" + strconv.Itoa(year) }

// handleYear serves /years/2024, /years/2024.svg and /years/2024.json.
func (s *server) handleYear(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "year")
	yearStr, ext, _ := strings.Cut(param, ".")

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidYear, "not a year: %q", yearStr))
		return
	}

	format := pipeline.FormatSVG
	switch ext {
	case "", pipeline.FormatSVG:
	case pipeline.FormatJSON:
		format = pipeline.FormatJSON
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", ext))
		return
	}

	scene, err := s.runner.Scene(r.Context(), year)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := pipeline.Render(r.Context(), scene, pipeline.Options{
		Formats: []string{format},
		NavLink: yearURL,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := artifacts[format]

	w.Header().Set("Cache-Control", "no-store")
	switch {
	case ext == pipeline.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case ext == pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		body, err = renderPage(s.title, year, body)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	_, _ = w.Write(body)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}} {{end}}{{.Year}}</title>
<style>body { margin: 2rem; font-family: sans-serif; }</style>
</head>
<body>
{{.SVG}}
</body>
</html>
`))

func renderPage(title string, year int, svg []byte) ([]byte, error) {
	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Title string
		Year  int
		SVG   template.HTML
	}{title, year, template.HTML(svg)})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render page")
	}
	return []byte(b.String()), nil
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

// accessLog logs one line per request through the CLI logger.
func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", chimw.GetReqID(r.Context()))
	})
}
