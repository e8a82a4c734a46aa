package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	overrides
	output  string   // output file (single format) or base path
	formats []string // output formats: "svg", "json", "png", "pdf"
	script  bool     // embed the navigation event script in SVG output
	scale   float64  // PNG resolution multiplier
	watch   bool     // re-render when the config or a data file changes
}

// renderCommand creates the render command.
//
// Output paths:
//   - no --output: heatcal-<year>.<format> in the working directory
//   - --output with a format extension: used as-is for that format, as base
//     path for the others
//   - --output without one: base path, ".<format>" appended
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the calendar heatmap to files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !opts.watch {
				return c.runRender(cmd.Context(), &opts)
			}
			return c.watchRender(cmd.Context(), &opts)
		},
	}

	opts.overrides.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.script, "script", false, "embed a script dispatching navigation events in SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the config or a data file changes")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if formats := pipeline.ParseFormats(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}

// runRender loads the configuration and datasets and writes the selected
// year in every requested format.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	sw := startStopwatch(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	runner, set, err := c.openRunner(ctx, cfg, opts.refresh)
	if err != nil {
		return err
	}
	defer set.Close()

	host := &fileHost{
		ctx:    ctx,
		output: opts.output,
		opts: pipeline.Options{
			Formats: opts.formats,
			Script:  opts.script,
			Scale:   opts.scale,
			Logger:  logger,
		},
	}
	view := &calendar.ViewState{SelectedYear: cfg.SelectedYear(c.now())}
	logger.Debugf("Rendering %d from %d dataset(s)", view.SelectedYear, len(set.Datasets()))

	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %d", view.SelectedYear))
	if !c.verbose {
		spin.Start()
	}
	err = runner.Controller(ctx, host, view).Render()
	spin.Stop()
	if err != nil {
		return err
	}
	if host.err != nil {
		return host.err
	}

	sw.done(fmt.Sprintf("Rendered %d", view.SelectedYear), "formats", strings.Join(opts.formats, ","))
	printStats(host.days, len(set.Datasets()))
	for _, path := range host.written {
		printFile(path)
	}
	return nil
}

// fileHost is a calendar host that writes every mounted scene to disk,
// replacing the files of the previous scene.
type fileHost struct {
	ctx     context.Context
	output  string
	opts    pipeline.Options
	written []string
	days    int // days with data in the last mounted scene
	err     error
}

// Mount implements calendar.Host.
func (h *fileHost) Mount(s *calendar.Scene) {
	h.err = nil
	artifacts, err := pipeline.Render(h.ctx, s, h.opts)
	if err != nil {
		h.err = err
		return
	}
	year := s.Years()[0]
	written := make([]string, 0, len(h.opts.Formats))
	for _, format := range h.opts.Formats {
		path := outputPath(h.output, year, format, len(h.opts.Formats) == 1)
		if err := writeFileAtomic(path, artifacts[format]); err != nil {
			h.err = errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
			return
		}
		written = append(written, path)
	}
	h.written = written
	h.days = 0
	for _, c := range s.Cells() {
		if c.Present {
			h.days++
		}
	}
}

// outputPath derives the file for one format.
func outputPath(output string, year int, format string, single bool) string {
	if output == "" {
		return fmt.Sprintf("%s-%d.%s", appName, year, format)
	}
	ext := filepath.Ext(output)
	if !pipeline.IsFormat(strings.TrimPrefix(ext, ".")) {
		return output + "." + format
	}
	if single {
		return output
	}
	return strings.TrimSuffix(output, ext) + "." + format
}

// writeFileAtomic replaces path so that readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
