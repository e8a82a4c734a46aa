package sink_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/calendar/sink"
)

func ExampleRenderSVG() {
	steps := calendar.SourceFunc(func(d time.Time) (float64, bool) {
		return float64(d.YearDay() % 10), d.Weekday() != time.Sunday
	})
	scene := calendar.Build(calendar.Aggregate(2023, []calendar.Source{steps}), &calendar.Config{
		Title:   "Steps",
		Domain:  [2]float64{0, 10},
		Palette: []string{"#eee", "#999", "#333"},
	})

	svg := string(sink.RenderSVG(scene, sink.WithNavLink(func(d int) string {
		return fmt.Sprintf("/years/%d", 2023+d)
	})))

	fmt.Println(strings.Count(svg, "<rect"), strings.Count(svg, "<path"))
	fmt.Println(strings.Contains(svg, `<a href="/years/2022">`))
	// Output:
	// 365 11
	// true
}
