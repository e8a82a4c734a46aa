package calendar

import (
	"testing"
	"time"
)

func januaryConfig() *Config {
	return &Config{
		Title:   "Commits",
		Domain:  [2]float64{0, 10},
		Palette: greens,
	}
}

func TestBuildJanuaryYear(t *testing.T) {
	s := Build(Aggregate(2024, []Source{januaryOnly(1)}), januaryConfig())
	if s == nil {
		t.Fatal("Build() returned nil")
	}

	if s.Width != 945 || s.Height != 183 {
		t.Errorf("size = %vx%v, want 945x183", s.Width, s.Height)
	}
	if got := s.Years(); len(got) != 1 || got[0] != 2024 {
		t.Errorf("Years() = %v, want [2024]", got)
	}

	cells := s.Cells()
	if len(cells) != DaysPerYear {
		t.Fatalf("cells = %d, want %d", len(cells), DaysPerYear)
	}
	var colored, neutral int
	for _, c := range cells {
		switch c.Fill {
		case greens[0]:
			colored++
			if c.Date.Month() != time.January {
				t.Errorf("%s colored outside January", FormatDate(c.Date))
			}
		case NeutralColor:
			neutral++
		default:
			t.Errorf("%s unexpected fill %s", FormatDate(c.Date), c.Fill)
		}
	}
	if colored != 31 || neutral != 334 {
		t.Errorf("colored/neutral = %d/%d, want 31/334", colored, neutral)
	}

	first := cells[0]
	if first.X != 0.5 || first.Y != 30.5 || first.W != 16 || first.H != 16 {
		t.Errorf("first cell = %+v", first)
	}
	if first.Title != "2024-01-01\n1" {
		t.Errorf("first cell title = %q", first.Title)
	}
	if last := cells[len(cells)-1]; last.Title != "2024-12-30" {
		t.Errorf("last cell title = %q, want date only", last.Title)
	}

	if got := len(s.Paths()); got != 11 {
		t.Errorf("separators = %d, want 11", got)
	}
	for _, p := range s.Paths() {
		if p.Fill != "none" || p.Stroke != "#fff" || p.StrokeWidth != 3 {
			t.Errorf("separator style = %+v", p)
		}
	}

	labels := s.Texts(ClassMonthLabel)
	if len(labels) != 12 {
		t.Fatalf("month labels = %d, want 12", len(labels))
	}
	if labels[0].Content != "Jan" || labels[11].Content != "Dec" {
		t.Errorf("month labels run %s..%s", labels[0].Content, labels[11].Content)
	}
	if labels[1].X != 87 || labels[1].Y != 25 {
		t.Errorf("Feb label at (%v, %v), want (87, 25)", labels[1].X, labels[1].Y)
	}
}

func TestBuildStripHeader(t *testing.T) {
	s := Build(Aggregate(2024, nil), januaryConfig())
	strip := s.Strips[0]
	if strip.X != 40.5 || strip.Y != 25.5 {
		t.Errorf("strip translate = (%v, %v), want (40.5, 25.5)", strip.X, strip.Y)
	}

	tests := []struct {
		class   string
		content string
		x, y    float64
		size    float64
		anchor  string
	}{
		{ClassNavPrev, "<", -10, -1, 12, "start"},
		{ClassYearLabel, "2024", 0, 2, 18, "start"},
		{ClassNavNext, ">", 42, -1, 12, "start"},
		{ClassTitle, "Commits", 442, 0, 20, "middle"},
	}
	for _, tt := range tests {
		texts := s.Texts(tt.class)
		if len(texts) != 1 {
			t.Fatalf("%s: %d texts, want 1", tt.class, len(texts))
		}
		got := texts[0]
		if got.Content != tt.content || got.X != tt.x || got.Y != tt.y || got.FontSize != tt.size || got.Anchor != tt.anchor || !got.Bold {
			t.Errorf("%s = %+v", tt.class, got)
		}
	}
}

func TestBuildWeekdays(t *testing.T) {
	s := Build(Aggregate(2024, nil), januaryConfig())
	days := s.Texts(ClassWeekday)
	if len(days) != 7 {
		t.Fatalf("weekday labels = %d, want 7", len(days))
	}
	want := []struct {
		content string
		y       float64
	}{
		{"S", 140.5}, // Sunday is the bottom row
		{"M", 38.5},
		{"T", 55.5},
		{"W", 72.5},
		{"T", 89.5},
		{"F", 106.5},
		{"S", 123.5},
	}
	for i, w := range want {
		d := days[i]
		if d.Content != w.content || d.Y != w.y || d.X != -5 || d.DY != "0.31em" {
			t.Errorf("weekday %d = %+v, want %s at y=%v", i, d, w.content, w.y)
		}
	}
}

func TestBuildMultipleYears(t *testing.T) {
	var records []DailyRecord
	records = append(records, Aggregate(2022, nil)...)
	records = append(records, Aggregate(2024, nil)...)
	records = append(records, Aggregate(2023, nil)...)

	s := Build(records, januaryConfig())
	years := s.Years()
	if len(years) != 3 || years[0] != 2024 || years[1] != 2023 || years[2] != 2022 {
		t.Fatalf("Years() = %v, want [2024 2023 2022]", years)
	}
	if s.Height != 3*183 {
		t.Errorf("Height = %v, want %v", s.Height, 3*183)
	}
	if y := s.Strips[1].Y; y != 208.5 {
		t.Errorf("second strip y = %v, want 208.5", y)
	}
	if got := len(s.Cells()); got != 3*DaysPerYear {
		t.Errorf("cells = %d, want %d", got, 3*DaysPerYear)
	}
}

func TestBuildEmpty(t *testing.T) {
	if s := Build(nil, januaryConfig()); s != nil {
		t.Error("Build(nil records) returned a scene")
	}
	if s := Build(Aggregate(2024, nil), nil); s != nil {
		t.Error("Build(nil config) returned a scene")
	}
}

func TestBuildUniqueIDs(t *testing.T) {
	records := Aggregate(2024, nil)
	a := Build(records, januaryConfig())
	b := Build(records, januaryConfig())
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("scene IDs %q and %q should be distinct and non-empty", a.ID, b.ID)
	}
}

func TestBuildWithScale(t *testing.T) {
	fixed := scaleFunc(func(float64) string { return "#123456" })
	s := Build(Aggregate(2024, []Source{constant(3)}), januaryConfig(), WithScale(fixed))
	for _, c := range s.Cells() {
		if c.Fill != "#123456" {
			t.Fatalf("%s fill = %s", FormatDate(c.Date), c.Fill)
		}
	}
}

type scaleFunc func(float64) string

func (f scaleFunc) Color(v float64) string { return f(v) }
