// Package pipeline turns configured datasets into encoded calendars. The
// CLI, the HTTP server and the terminal browser all go through a [Runner],
// so a year looks the same in every host.
//
// A run loads the selected year from each dataset ([Loader]), sums the
// values per day, builds a scene with pkg/calendar and encodes it in the
// requested formats:
//
//	runner := pipeline.NewRunner(set, cfg.Calendar(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Year:    2024,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Interactive hosts use [Runner.Controller], which reloads the datasets
// whenever a navigation glyph is clicked.
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
)

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// Output formats, in the order --format completion offers them.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Formats lists every output format.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF}

// IsFormat reports whether f names an output format.
func IsFormat(f string) bool { return slices.Contains(Formats, f) }

// Options configures a pipeline run.
type Options struct {
	// Year to render. Zero means the current UTC year.
	Year int `json:"year,omitempty"`

	Formats []string `json:"formats,omitempty"`

	// NavLink maps a target year to a URL. When set, SVG navigation glyphs
	// become links.
	NavLink func(year int) string `json:"-"`

	// Script embeds the navigation event script in SVG output.
	Script bool `json:"script,omitempty"`

	// Scale is the PNG resolution multiplier.
	Scale float64 `json:"scale,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Scene     *calendar.Scene
	Artifacts map[string][]byte
	Stats     Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Year       int
	Datasets   int
	Days       int // days with a value
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateFormats rejects the first unknown format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !IsFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (want one of %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults(now time.Time) error {
	if o.Year == 0 {
		o.Year = now.UTC().Year()
	}
	if err := errors.ValidateYear(o.Year); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", o.Scale)
	}
	return nil
}
