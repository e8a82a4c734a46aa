package sink

import (
	"context"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/render"
)

// RenderPDF converts the scene's SVG to PDF. opts apply to the SVG, so
// links drawn with [WithNavLink] stay clickable in the PDF.
func RenderPDF(ctx context.Context, s *calendar.Scene, opts ...SVGOption) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scene to convert")
	}
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}

// RenderPNG converts the scene's SVG to PNG at scale times the scene size.
func RenderPNG(ctx context.Context, s *calendar.Scene, scale float64, opts ...SVGOption) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scene to convert")
	}
	return render.ToPNG(ctx, RenderSVG(s, opts...), scale)
}
