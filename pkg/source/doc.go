// Package source loads daily values from files, databases and HTTP endpoints.
//
// # Overview
//
// A [Dataset] fetches one year of values as a [Series]. Series implement
// [calendar.Source], so a slice of them feeds [calendar.Aggregate] directly.
// Datasets hold no per-year state; every fetch returns a fresh series, which
// keeps a [Set] safe to share between concurrent HTTP requests.
//
// Implementations:
//
//   - [File]: .json, .csv, .toml and .yaml series files
//   - [Redis]: a hash whose fields are dates (HGETALL)
//   - [Mongo]: {series, date, value} documents
//   - [HTTP]: a JSON series document per year, cached and retried
//
// # Series documents
//
// JSON, TOML, YAML and HTTP bodies share one shape:
//
//	{"name": "runs", "values": {"2024-01-01": 5.2, "2024-01-03": 3}}
//
// CSV files hold date,value rows with an optional header. Duplicate days are
// summed in every format.
//
// # Sets
//
// [Open] builds a [Set] from configuration. [Set.Load] fetches every
// dataset concurrently and reports to [observability.Pipeline]; concurrent
// loads of the same year share one fetch.
//
// [calendar.Source]: github.com/matzehuels/heatcal/pkg/calendar.Source
// [calendar.Aggregate]: github.com/matzehuels/heatcal/pkg/calendar.Aggregate
// [observability.Pipeline]: github.com/matzehuels/heatcal/pkg/observability.Pipeline
package source
