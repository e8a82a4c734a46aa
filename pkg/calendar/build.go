package calendar

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Element classes, also emitted as SVG class attributes.
const (
	ClassYear       = "year"
	ClassNavPrev    = "nav-prev"
	ClassYearLabel  = "year-label"
	ClassNavNext    = "nav-next"
	ClassTitle      = "title"
	ClassWeekdays   = "weekdays"
	ClassWeekday    = "weekday"
	ClassDays       = "days"
	ClassDay        = "day"
	ClassMonths     = "months"
	ClassMonth      = "month"
	ClassSeparator  = "month-separator"
	ClassMonthLabel = "month-label"
)

const (
	weekdayInitials = "SMTWTFS" // indexed by time.Weekday
	separatorColor  = "#fff"
	separatorWidth  = 3
)

// Config is the render configuration: a static title and the color scale.
type Config struct {
	Title   string
	Domain  [2]float64
	Palette []string
}

// Scale returns the quantized color scale of the configuration.
func (c *Config) Scale() ColorScale { return NewQuantize(c.Domain, c.Palette) }

// BuildOption configures [Build].
type BuildOption func(*builder)

type builder struct {
	geom     Geometry
	scale    ColorScale
	navigate NavigateFunc
}

// WithGeometry overrides [DefaultGeometry].
func WithGeometry(g Geometry) BuildOption { return func(b *builder) { b.geom = g } }

// WithScale overrides the scale derived from the configuration.
func WithScale(s ColorScale) BuildOption { return func(b *builder) { b.scale = s } }

// WithNavigate injects the callback run when a navigation glyph is clicked.
func WithNavigate(fn NavigateFunc) BuildOption { return func(b *builder) { b.navigate = fn } }

// Build lays out records as a new [Scene]. It returns nil when there are no
// records or no configuration.
func Build(records []DailyRecord, cfg *Config, opts ...BuildOption) *Scene {
	if len(records) == 0 || cfg == nil {
		return nil
	}
	b := builder{geom: DefaultGeometry, scale: cfg.Scale()}
	for _, opt := range opts {
		opt(&b)
	}

	groups := GroupByYear(records)
	s := &Scene{
		ID:       uuid.NewString(),
		Width:    b.geom.Width,
		Height:   b.geom.Height(len(groups)),
		Strips:   make([]*Group, 0, len(groups)),
		navigate: b.navigate,
	}
	for i, g := range groups {
		s.Strips = append(s.Strips, b.strip(i, g, cfg.Title))
	}
	return s
}

func (b *builder) strip(i int, g YearGroup, title string) *Group {
	c := b.geom.CellSize
	return &Group{
		Class: ClassYear,
		X:     b.geom.MarginLeft,
		Y:     b.geom.StripHeight()*float64(i) + c*1.5,
		Year:  g.Year,
		Children: []Node{
			&Text{Class: ClassNavPrev, X: -10, Y: -1, FontSize: 12, Bold: true, Anchor: "start", Content: "<", Nav: -1},
			&Text{Class: ClassYearLabel, X: 0, Y: 2, FontSize: 18, Bold: true, Anchor: "start", Content: strconv.Itoa(g.Year)},
			&Text{Class: ClassNavNext, X: 42, Y: -1, FontSize: 12, Bold: true, Anchor: "start", Content: ">", Nav: 1},
			&Text{Class: ClassTitle, X: 26 * c, FontSize: 20, Bold: true, Anchor: "middle", Content: title},
			b.weekdays(),
			b.cells(g.Records),
			b.months(g.Records),
		},
	}
}

func (b *builder) weekdays() *Group {
	g := &Group{Class: ClassWeekdays, Anchor: "end", Children: make([]Node, 0, 7)}
	for wd := range 7 {
		g.Children = append(g.Children, &Text{
			Class:   ClassWeekday,
			X:       -5,
			Y:       (float64(weekdayRow(time.Weekday(wd)))+0.5)*b.geom.CellSize + b.geom.HeaderOffset,
			DY:      "0.31em",
			Content: weekdayInitials[wd : wd+1],
		})
	}
	return g
}

func (b *builder) cells(records []DailyRecord) *Group {
	g := &Group{Class: ClassDays, Children: make([]Node, 0, len(records))}
	for _, r := range records {
		box := b.geom.Cell(r.Date)
		fill := NeutralColor
		if r.Present {
			fill = b.scale.Color(r.Value)
		}
		g.Children = append(g.Children, &Rect{
			Class:   ClassDay,
			X:       box.X,
			Y:       box.Y,
			W:       box.W,
			H:       box.H,
			Fill:    fill,
			Title:   Tooltip(r),
			Date:    r.Date,
			Value:   r.Value,
			Present: r.Present,
		})
	}
	return g
}

// months draws one group per month from the month of the first record up to
// (excluding) the last record. The first month gets no separator.
func (b *builder) months(records []DailyRecord) *Group {
	g := &Group{Class: ClassMonths}
	if len(records) == 0 {
		return g
	}
	last := records[len(records)-1].Date
	for i, m := 0, monthStart(records[0].Date); m.Before(last); i, m = i+1, m.AddDate(0, 1, 0) {
		month := &Group{Class: ClassMonth}
		if i > 0 {
			month.Children = append(month.Children, &Path{
				Class:       ClassSeparator,
				D:           b.geom.MonthPath(m),
				Fill:        "none",
				Stroke:      separatorColor,
				StrokeWidth: separatorWidth,
			})
		}
		month.Children = append(month.Children, &Text{
			Class:   ClassMonthLabel,
			X:       b.geom.MonthLabelX(m),
			Y:       b.geom.MonthLabelY(),
			Content: m.Format("Jan"),
		})
		g.Children = append(g.Children, month)
	}
	return g
}
