package sink

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
)

func januaryScene(t *testing.T) *calendar.Scene {
	t.Helper()
	jan := calendar.SourceFunc(func(d time.Time) (float64, bool) {
		return 1, d.Month() == time.January
	})
	s := calendar.Build(calendar.Aggregate(2024, []calendar.Source{jan}), &calendar.Config{
		Title:   "Runs & Rides",
		Domain:  [2]float64{0, 10},
		Palette: []string{"#9be9a8", "#40c463", "#30a14e", "#216e39"},
	})
	if s == nil {
		t.Fatal("Build() returned nil")
	}
	return s
}

func TestRenderSVGStructure(t *testing.T) {
	s := januaryScene(t)
	svg := string(RenderSVG(s))

	checks := []struct {
		name string
		sub  string
		want int
	}{
		{"cells", `<rect class="day"`, 365},
		{"colored cells", `fill="#9be9a8"`, 31},
		{"neutral cells", `fill="#EBEDF0"`, 334},
		{"separators", `<path class="month-separator"`, 11},
		{"month labels", `class="month-label"`, 12},
		{"weekday labels", `class="weekday"`, 7},
		{"nav glyphs", `data-nav=`, 2},
		{"strips", `<g class="year"`, 1},
		{"tooltips", `<title>`, 365},
	}
	for _, c := range checks {
		if got := strings.Count(svg, c.sub); got != c.want {
			t.Errorf("%s: found %d of %q, want %d", c.name, got, c.sub, c.want)
		}
	}

	wantRoot := `<svg xmlns="http://www.w3.org/2000/svg" width="945" height="183" viewBox="0 0 945 183" style="max-width: 100%; height: auto; font: 10px sans-serif;" data-render="` + s.ID + `">`
	if !strings.HasPrefix(svg, wantRoot) {
		t.Errorf("root element = %q", strings.SplitN(svg, "\n", 2)[0])
	}
	for _, sub := range []string{
		`transform="translate(40.5,25.5)" data-year="2024"`,
		`<text class="nav-prev" x="-10" y="-1" font-size="12" font-weight="bold" text-anchor="start" data-nav="-1" style="cursor: pointer">&lt;</text>`,
		`<text class="nav-next" x="42" y="-1" font-size="12" font-weight="bold" text-anchor="start" data-nav="1" style="cursor: pointer">&gt;</text>`,
		`<text class="title" x="442" y="0" font-size="20" font-weight="bold" text-anchor="middle">Runs &amp; Rides</text>`,
		`<g class="weekdays" text-anchor="end">`,
		`<rect class="day" x="0.5" y="30.5" width="16" height="16" fill="#9be9a8" data-date="2024-01-01" data-value="1"><title>2024-01-01&#xA;1</title></rect>`,
		`data-date="2024-12-30"><title>2024-12-30</title></rect>`,
		`<path class="month-separator" d="M85,0V81H68V149" fill="none" stroke="#fff" stroke-width="3"/>`,
	} {
		if !strings.Contains(svg, sub) {
			t.Errorf("SVG missing %q", sub)
		}
	}
	if strings.Contains(svg, "<script") || strings.Contains(svg, "<a ") {
		t.Error("plain render should have no script or links")
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(januaryScene(t), WithScript(), WithNavLink(func(int) string { return "/years?from=2024&step=1" }))
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVGNavLink(t *testing.T) {
	svg := string(RenderSVG(januaryScene(t), WithNavLink(func(d int) string {
		if d < 0 {
			return "/years/2023"
		}
		return "/years/2025"
	})))

	if !strings.Contains(svg, `<a href="/years/2023"><text class="nav-prev"`) {
		t.Error("previous glyph not linked")
	}
	if !strings.Contains(svg, `<a href="/years/2025"><text class="nav-next"`) {
		t.Error("next glyph not linked")
	}
	if got := strings.Count(svg, "<a "); got != 2 {
		t.Errorf("links = %d, want 2", got)
	}
}

func TestRenderSVGNavLinkEmpty(t *testing.T) {
	svg := string(RenderSVG(januaryScene(t), WithNavLink(func(int) string { return "" })))
	if strings.Contains(svg, "<a ") {
		t.Error("empty URL should not produce a link")
	}
}

func TestRenderSVGScript(t *testing.T) {
	svg := string(RenderSVG(januaryScene(t), WithScript()))
	if !strings.Contains(svg, NavigateEvent) {
		t.Errorf("script does not dispatch %s", NavigateEvent)
	}
	if !strings.HasSuffix(svg, "]]></script>\n</svg>\n") {
		t.Error("script should be the last child of the root")
	}
}

func TestRenderSVGDistinctRenders(t *testing.T) {
	a := januaryScene(t)
	b := januaryScene(t)
	if string(RenderSVG(a)) == string(RenderSVG(b)) {
		t.Error("two renders produced identical documents; data-render should differ")
	}
}

func TestRenderSVGNil(t *testing.T) {
	if got := RenderSVG(nil); got != nil {
		t.Errorf("RenderSVG(nil) = %q, want nil", got)
	}
}
