package sink

import (
	"encoding/json"

	"github.com/matzehuels/heatcal/pkg/calendar"
)

type jsonOutput struct {
	ID     string     `json:"id"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Years  []int      `json:"years"`
	Strips []jsonNode `json:"strips"`
}

type jsonNode struct {
	Type        string     `json:"type"`
	Class       string     `json:"class,omitempty"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Width       float64    `json:"width,omitempty"`
	Height      float64    `json:"height,omitempty"`
	Year        int        `json:"year,omitempty"`
	Anchor      string     `json:"anchor,omitempty"`
	DY          string     `json:"dy,omitempty"`
	FontSize    float64    `json:"font_size,omitempty"`
	Bold        bool       `json:"bold,omitempty"`
	Content     string     `json:"content,omitempty"`
	Nav         int        `json:"nav,omitempty"`
	Fill        string     `json:"fill,omitempty"`
	Title       string     `json:"title,omitempty"`
	Date        string     `json:"date,omitempty"`
	Value       *float64   `json:"value,omitempty"`
	D           string     `json:"d,omitempty"`
	Stroke      string     `json:"stroke,omitempty"`
	StrokeWidth float64    `json:"stroke_width,omitempty"`
	Children    []jsonNode `json:"children,omitempty"`
}

// RenderJSON exports the scene as a typed node tree. Day cells carry a
// value only when the day has data. A nil scene yields JSON null.
func RenderJSON(s *calendar.Scene) ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := jsonOutput{
		ID:     s.ID,
		Width:  s.Width,
		Height: s.Height,
		Years:  s.Years(),
		Strips: make([]jsonNode, 0, len(s.Strips)),
	}
	for _, g := range s.Strips {
		out.Strips = append(out.Strips, toJSON(g))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSON(n calendar.Node) jsonNode {
	switch n := n.(type) {
	case *calendar.Group:
		j := jsonNode{Type: "group", Class: n.Class, X: n.X, Y: n.Y, Year: n.Year, Anchor: n.Anchor}
		for _, c := range n.Children {
			j.Children = append(j.Children, toJSON(c))
		}
		return j
	case *calendar.Text:
		return jsonNode{
			Type: "text", Class: n.Class, X: n.X, Y: n.Y,
			DY: n.DY, FontSize: n.FontSize, Bold: n.Bold, Anchor: n.Anchor,
			Content: n.Content, Nav: n.Nav,
		}
	case *calendar.Rect:
		j := jsonNode{
			Type: "rect", Class: n.Class, X: n.X, Y: n.Y, Width: n.W, Height: n.H,
			Fill: n.Fill, Title: n.Title, Date: calendar.FormatDate(n.Date),
		}
		if n.Present {
			v := n.Value
			j.Value = &v
		}
		return j
	case *calendar.Path:
		return jsonNode{Type: "path", Class: n.Class, D: n.D, Fill: n.Fill, Stroke: n.Stroke, StrokeWidth: n.StrokeWidth}
	}
	return jsonNode{}
}
