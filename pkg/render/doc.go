// Package render converts rendered SVG documents into other formats.
//
// The [ToPDF] and [ToPNG] functions shell out to the external rsvg-convert
// tool (from librsvg). The calendar sinks build on them:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When the tool is missing both functions return an UNSUPPORTED error;
// [Available] lets callers check up front.
package render
