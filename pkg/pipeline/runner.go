package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
)

// Loader fetches one year of every dataset. *source.Set implements it.
type Loader interface {
	Load(ctx context.Context, year int) ([]calendar.Source, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, year int) ([]calendar.Source, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, year int) ([]calendar.Source, error) {
	return f(ctx, year)
}

// Runner executes the pipeline against one loader and render configuration.
//
// The Runner holds no per-render state. Multiple goroutines can safely use
// the same Runner as long as the Loader is safe for concurrent use.
type Runner struct {
	Loader   Loader
	Config   *calendar.Config
	Geometry calendar.Geometry
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil loader renders every year empty and a
// nil logger means log.Default().
func NewRunner(loader Loader, cfg *calendar.Config, logger *log.Logger) *Runner {
	if loader == nil {
		loader = LoaderFunc(func(context.Context, int) ([]calendar.Source, error) { return nil, nil })
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Loader:   loader,
		Config:   cfg,
		Geometry: calendar.DefaultGeometry,
		Logger:   logger,
	}
}

// Execute runs load → build → render for opts.Year.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(time.Now()); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{Stats: Stats{Year: opts.Year}}

	loadStart := time.Now()
	records, datasets, err := r.records(ctx, opts.Year)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Datasets = datasets
	result.Stats.Days = presentDays(records)

	opts.Logger.Debug("loaded year",
		"year", opts.Year,
		"datasets", datasets,
		"days", result.Stats.Days,
		"duration", result.Stats.LoadTime)

	result.Scene = r.build(records)
	if result.Scene == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no render configuration")
	}

	renderStart := time.Now()
	result.Artifacts, err = Render(ctx, result.Scene, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scene loads year and builds its scene without navigation.
func (r *Runner) Scene(ctx context.Context, year int) (*calendar.Scene, error) {
	records, _, err := r.records(ctx, year)
	if err != nil {
		return nil, err
	}
	s := r.build(records)
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no render configuration")
	}
	return s, nil
}

// Controller returns a controller drawing onto host. Every render, including
// those triggered by navigation, reloads the datasets for the selected year
// under ctx.
func (r *Runner) Controller(ctx context.Context, host calendar.Host, view *calendar.ViewState) *calendar.Controller {
	ctrl := &calendar.Controller{
		Host:     host,
		View:     view,
		Config:   r.Config,
		Geometry: r.Geometry,
	}
	ctrl.Load = func(year int) error {
		if err := errors.ValidateYear(year); err != nil {
			return err
		}
		sources, err := r.Loader.Load(ctx, year)
		if err != nil {
			return err
		}
		ctrl.Sources = sources
		r.Logger.Debug("loaded year", "year", year, "datasets", len(sources))
		return nil
	}
	return ctrl
}

func (r *Runner) records(ctx context.Context, year int) ([]calendar.DailyRecord, int, error) {
	if err := errors.ValidateYear(year); err != nil {
		return nil, 0, err
	}
	sources, err := r.Loader.Load(ctx, year)
	if err != nil {
		return nil, 0, err
	}
	return calendar.Aggregate(year, sources), len(sources), nil
}

func (r *Runner) build(records []calendar.DailyRecord) *calendar.Scene {
	return calendar.Build(records, r.Config, calendar.WithGeometry(r.geometry()))
}

func (r *Runner) geometry() calendar.Geometry {
	if r.Geometry == (calendar.Geometry{}) {
		return calendar.DefaultGeometry
	}
	return r.Geometry
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func presentDays(records []calendar.DailyRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Present {
			n++
		}
	}
	return n
}
