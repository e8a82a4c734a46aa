// Package sink serializes calendar scenes into output formats.
//
// # Overview
//
// A "sink" transforms a built [calendar.Scene] into bytes:
//
//   - SVG: standalone document mirroring the scene tree
//   - JSON: typed node tree for external hosts
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] writes one <g class="year"> per strip. The root element carries
// the scene ID in data-render so a host can tell renders apart, and every
// day cell has a <title> tooltip. Navigation glyphs carry data-nav="-1" or
// data-nav="1".
//
// A static SVG cannot call back into Go, so hosts choose how clicks travel:
//
//	// server: glyphs become links to the neighbouring year
//	svg := sink.RenderSVG(scene, sink.WithNavLink(func(d int) string {
//	    return fmt.Sprintf("/years/%d", year+d)
//	}))
//
//	// embedding page: listen for the DOM event
//	svg := sink.RenderSVG(scene, sink.WithScript())
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] generate SVG first, then convert it with
// [render.ToPDF] and [render.ToPNG].
//
// [render.ToPDF]: github.com/matzehuels/heatcal/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/heatcal/pkg/render.ToPNG
package sink
