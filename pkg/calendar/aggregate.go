package calendar

import (
	"slices"
	"time"
)

// DaysPerYear is the number of records [Aggregate] emits, leap year or not.
const DaysPerYear = 365

// Source supplies a numeric value per calendar day.
// The second return value is false when the source has no data for date.
type Source interface {
	Value(date time.Time) (float64, bool)
}

// SourceFunc adapts a function to the [Source] interface.
type SourceFunc func(date time.Time) (float64, bool)

// Value calls f(date).
func (f SourceFunc) Value(date time.Time) (float64, bool) { return f(date) }

// DailyRecord is one day's aggregated value.
// Present is false when no source reported a value for Date; Value is then 0
// and must not be read as a measurement.
type DailyRecord struct {
	Date    time.Time
	Value   float64
	Present bool
}

// YearGroup is the run of records belonging to one UTC calendar year.
type YearGroup struct {
	Year    int
	Records []DailyRecord
}

// Aggregate returns [DaysPerYear] records starting at Jan 1 (UTC) of year.
//
// Every source is queried once per day. A day is absent when all sources
// report no value; otherwise its value is the sum of the values that were
// reported. Nil sources are skipped.
func Aggregate(year int, sources []Source) []DailyRecord {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	records := make([]DailyRecord, DaysPerYear)
	for i := range records {
		date := start.AddDate(0, 0, i)
		rec := DailyRecord{Date: date}
		for _, src := range sources {
			if src == nil {
				continue
			}
			v, ok := src.Value(date)
			if !ok {
				continue
			}
			rec.Value += v
			rec.Present = true
		}
		records[i] = rec
	}
	return records
}

// GroupByYear splits records by the UTC year of their date.
//
// Records are sorted by date (stable, on a copy) before grouping, so order
// within a year is chronological. Groups are returned most recent year first.
// The input slice is not modified.
func GroupByYear(records []DailyRecord) []YearGroup {
	if len(records) == 0 {
		return nil
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b DailyRecord) int {
		return a.Date.Compare(b.Date)
	})

	var groups []YearGroup
	for _, r := range sorted {
		y := r.Date.UTC().Year()
		if n := len(groups); n > 0 && groups[n-1].Year == y {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, YearGroup{Year: y, Records: []DailyRecord{r}})
	}
	slices.Reverse(groups)
	return groups
}
