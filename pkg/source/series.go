package source

import (
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
)

const dateLayout = "2006-01-02"

// Series holds values by UTC day.
type Series map[time.Time]float64

// Add sums v into the value of t's day.
func (s Series) Add(t time.Time, v float64) { s[day(t)] += v }

// Value implements calendar.Source.
func (s Series) Value(t time.Time) (float64, bool) {
	v, ok := s[day(t)]
	return v, ok
}

var _ calendar.Source = Series(nil)

// document is the shared shape of JSON, TOML, YAML and HTTP series.
type document struct {
	Name   string             `json:"name" toml:"name" yaml:"name"`
	Values map[string]float64 `json:"values" toml:"values" yaml:"values"`
}

// series converts the document's values for year, rejecting bad dates.
func (d document) series(year int, origin string) (Series, error) {
	s := make(Series)
	for k, v := range d.Values {
		t, err := ParseDate(k)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s: bad date %q", origin, k)
		}
		if t.Year() == year {
			s.Add(t, v)
		}
	}
	return s, nil
}

// ParseDate parses an ISO date (YYYY-MM-DD) as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
