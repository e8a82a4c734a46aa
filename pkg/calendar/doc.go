// Package calendar renders a year-by-year calendar heatmap as a scene graph.
//
// # Overview
//
// Each day of a year becomes a colored cell positioned by week column and
// weekday row, colored by a quantized value scale, with month separators,
// weekday and month labels, a year title and two navigation glyphs. The
// package is split into three steps that the [Render] entry point chains:
//
//  1. [Aggregate]: sum the per-day values of several [Source]s for one year
//  2. [GroupByYear]: split the daily records into year strips, newest first
//  3. [Build]: lay out cells, labels and separators into a fresh [Scene]
//
// The scene is a tree of typed nodes ([Group], [Text], [Rect], [Path]) that
// output sinks turn into SVG or JSON (see the sink subpackage). Scenes are
// never mutated after [Build] returns; every render produces a new one.
//
// # Geometry
//
// Positions follow a Monday-aligned week grid. [WeekIndex] is the column of a
// date within its UTC year, [DayIndex] the row (Monday = 0). [Geometry] holds
// the pixel constants shared by every element:
//
//	cell := calendar.DefaultGeometry.Cell(date)   // x, y, w, h of the day cell
//	d := calendar.DefaultGeometry.MonthPath(first) // separator before a month
//
// # Navigation
//
// The only mutable state is [ViewState]. The two navigation glyphs of a strip
// carry a delta (-1 or +1); a host delivers clicks through [Scene.Click], which
// calls the [NavigateFunc] injected at build time. [Controller] wires this
// together: it owns nothing but references to the host's state, applies the
// delta and renders again.
//
//	canvas := &calendar.Canvas{}
//	ctl := &calendar.Controller{
//	    Host:    canvas,
//	    View:    &calendar.ViewState{SelectedYear: 2024},
//	    Config:  &calendar.Config{Domain: [2]float64{0, 10}, Palette: palette},
//	    Sources: sources,
//	}
//	_ = ctl.Render()
//	_ = canvas.Click(-1) // renders 2023
//
// # Leap years
//
// [Aggregate] always emits [DaysPerYear] (365) records starting at Jan 1, so
// Dec 31 of a leap year is not drawn. This matches the renderer the layout was
// taken from and is kept on purpose.
package calendar
