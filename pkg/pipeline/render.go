package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/calendar/sink"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/observability"
)

// Render encodes a scene in each of opts.Formats.
func Render(ctx context.Context, s *calendar.Scene, opts Options) (_ map[string][]byte, err error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	year := sceneYear(s)

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, year, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, year, opts.Formats, time.Since(start), err) }()

	svgOpts := buildSVGOptions(year, opts)
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultPNGScale
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var ferr error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatJSON:
			data, ferr = sink.RenderJSON(s)
		case FormatPNG:
			data, ferr = sink.RenderPNG(ctx, s, scale, svgOpts...)
		case FormatPDF:
			data, ferr = sink.RenderPDF(ctx, s, svgOpts...)
		}

		if ferr != nil {
			code := errors.GetCode(ferr)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, ferr, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions turns target-year links into the relative links the SVG
// sink draws.
func buildSVGOptions(year int, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.NavLink != nil {
		link := opts.NavLink
		svgOpts = append(svgOpts, sink.WithNavLink(func(delta int) string { return link(year + delta) }))
	}
	if opts.Script {
		svgOpts = append(svgOpts, sink.WithScript())
	}
	return svgOpts
}

func sceneYear(s *calendar.Scene) int {
	if years := s.Years(); len(years) > 0 {
		return years[0]
	}
	return 0
}
