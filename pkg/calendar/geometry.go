package calendar

import (
	"strconv"
	"time"
)

const week = 7 * 24 * time.Hour

// Geometry holds the pixel constants of the chart.
type Geometry struct {
	Width        float64 // chart width
	CellSize     float64 // height and width of a day, gutter included
	HeaderOffset float64 // space between a strip's title line and its grid
	MarginLeft   float64 // room for weekday initials left of the grid
}

// DefaultGeometry matches the original 945px chart.
var DefaultGeometry = Geometry{
	Width:        945,
	CellSize:     17,
	HeaderOffset: 30,
	MarginLeft:   40.5,
}

// Box is an axis-aligned rectangle in strip coordinates.
type Box struct {
	X, Y, W, H float64
}

// StripHeight is the height of one year strip: seven day rows plus header
// and title padding.
func (g Geometry) StripHeight() float64 { return g.CellSize*9 + g.HeaderOffset }

// Height returns the chart height for n year strips.
func (g Geometry) Height(n int) float64 { return g.StripHeight() * float64(n) }

// Cell returns the day cell for t. Cells are offset by half a pixel and
// leave a 1px gutter.
func (g Geometry) Cell(t time.Time) Box {
	return Box{
		X: float64(WeekIndex(t))*g.CellSize + 0.5,
		Y: float64(DayIndex(t))*g.CellSize + 0.5 + g.HeaderOffset,
		W: g.CellSize - 1,
		H: g.CellSize - 1,
	}
}

// MonthPath returns the SVG path of the separator drawn left of the month
// starting at first. When the month starts mid-week the stroke steps around
// the partial column; on a Monday it is a single vertical line.
func (g Geometry) MonthPath(first time.Time) string {
	d := min(7, max(0, DayIndex(first)))
	w := float64(WeekIndex(first))
	c, off := g.CellSize, g.HeaderOffset

	var p string
	switch d {
	case 0:
		p = "M" + num(w*c) + ",0"
	case 7:
		p = "M" + num((w+1)*c) + ",0"
	default:
		p = "M" + num((w+1)*c) + ",0V" + num(float64(d)*c+off) + "H" + num(w*c)
	}
	return p + "V" + num(7*c+off)
}

// MonthLabelX returns the x position of the label of the month starting at
// first: the column of the first Monday on or after it.
func (g Geometry) MonthLabelX(first time.Time) float64 {
	first = utcDay(first)
	return float64(weekCount(yearStart(first), mondayCeil(first)))*g.CellSize + 2
}

// MonthLabelY is the baseline of month labels, just above the grid.
func (g Geometry) MonthLabelY() float64 { return g.HeaderOffset - 5 }

// WeekIndex returns the zero-based Monday-aligned week column of t within
// its UTC year.
func WeekIndex(t time.Time) int {
	t = utcDay(t)
	return weekCount(yearStart(t), t)
}

// DayIndex returns the weekday row of t, Monday = 0 through Sunday = 6.
func DayIndex(t time.Time) int { return weekdayRow(t.UTC().Weekday()) }

func weekdayRow(wd time.Weekday) int { return (int(wd) + 6) % 7 }

// weekCount counts the Monday boundaries crossed between start and end.
func weekCount(start, end time.Time) int {
	return int(mondayFloor(end).Sub(mondayFloor(start)) / week)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func yearStart(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func mondayFloor(t time.Time) time.Time {
	t = utcDay(t)
	return t.AddDate(0, 0, -DayIndex(t))
}

func mondayCeil(t time.Time) time.Time {
	f := mondayFloor(t)
	if f.Equal(t) {
		return f
	}
	return f.AddDate(0, 0, 7)
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
