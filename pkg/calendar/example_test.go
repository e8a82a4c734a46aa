package calendar_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
)

func ExampleAggregate() {
	commits := calendar.SourceFunc(func(d time.Time) (float64, bool) {
		if d.Month() == time.January && d.Day() <= 3 {
			return float64(d.Day()), true
		}
		return 0, false
	})

	records := calendar.Aggregate(2024, []calendar.Source{commits, commits})
	for _, r := range records[:4] {
		fmt.Println(calendar.FormatDate(r.Date), r.Value, r.Present)
	}
	// Output:
	// 2024-01-01 2 true
	// 2024-01-02 4 true
	// 2024-01-03 6 true
	// 2024-01-04 0 false
}

func ExampleController() {
	canvas := &calendar.Canvas{}
	view := &calendar.ViewState{SelectedYear: 2024}
	ctrl := &calendar.Controller{
		Host:   canvas,
		View:   view,
		Config: &calendar.Config{Title: "Steps", Domain: [2]float64{0, 10000}, Palette: []string{"#eee", "#333"}},
	}

	_ = ctrl.Render()
	fmt.Println(canvas.Scene().Years())

	_ = canvas.Click(-1)
	fmt.Println(canvas.Scene().Years())

	_ = canvas.Click(+1)
	fmt.Println(canvas.Scene().Years(), canvas.Mounts())
	// Output:
	// [2024]
	// [2023]
	// [2024] 3
}

func ExampleFormatValue() {
	for _, v := range []float64{1, 42, 0.3, 1e-7} {
		fmt.Println(calendar.FormatValue(v))
	}
	// Output:
	// 1
	// 4e+1
	// 0.3
	// 1e-7
}

func ExampleGeometry_MonthPath() {
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	fmt.Println(calendar.DefaultGeometry.MonthPath(feb))
	// Output: M85,0V81H68V149
}
