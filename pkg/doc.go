// Package pkg provides the core libraries for heatcal calendar heatmaps.
//
// # Overview
//
// heatcal draws daily values as a calendar heatmap: one strip per year, one
// square per day, colored by a quantize scale, with glyphs that move the
// view to the neighbouring years. The pkg directory is organized as:
//
//  1. [calendar] - Layout, scene graph, color scale and navigation
//  2. [source] - Datasets backed by files, Redis, MongoDB and HTTP
//  3. [pipeline] - Orchestration (load → build → render)
//  4. [cache], [httputil] - Cached HTTP fetching for remote datasets
//  5. [config], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through heatcal:
//
//	Datasets (csv, json, toml, yaml, Redis hash, Mongo collection, HTTP)
//	         ↓
//	    [source] package (fetch one year, sum per day)
//	         ↓
//	    [calendar] package (aggregate, lay out, build the scene)
//	         ↓
//	    [calendar/sink] package (SVG or JSON), [render] (PDF or PNG)
//
// # Quick Start
//
//	set := source.NewSet([]source.Dataset{source.NewFile("runs", "runs.csv")})
//	runner := pipeline.NewRunner(set, &calendar.Config{
//	    Title:   "Runs",
//	    Domain:  [2]float64{0, 10},
//	    Palette: []string{"#9be9a8", "#40c463", "#30a14e", "#216e39"},
//	}, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Year: 2024, Formats: []string{"svg"}})
//
// [calendar]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/calendar
// [source]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/observability
// [calendar/sink]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/calendar/sink
// [render]: https://pkg.go.dev/github.com/matzehuels/heatcal/pkg/render
package pkg
