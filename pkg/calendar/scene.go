package calendar

import "time"

// Node is an element of a [Scene]. The concrete types are [*Group], [*Text],
// [*Rect] and [*Path].
type Node interface {
	node()
}

// Group is a container translated by (X, Y). Anchor, when set, is the
// text-anchor inherited by descendant text.
type Group struct {
	Class    string
	X, Y     float64
	Anchor   string
	Year     int // set on year strips
	Children []Node
}

// Text is a label. Nav is -1 or +1 on the navigation glyphs and 0 elsewhere.
type Text struct {
	Class    string
	X, Y     float64
	DY       string
	FontSize float64
	Bold     bool
	Anchor   string
	Content  string
	Nav      int
}

// Clickable reports whether the text is a navigation glyph.
func (t *Text) Clickable() bool { return t.Nav != 0 }

// Rect is a day cell.
type Rect struct {
	Class      string
	X, Y, W, H float64
	Fill       string
	Title      string
	Date       time.Time
	Value      float64
	Present    bool
}

// Path is a stroked outline, used for month separators.
type Path struct {
	Class       string
	D           string
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (*Group) node() {}
func (*Text) node()  {}
func (*Rect) node()  {}
func (*Path) node()  {}

// NavigateFunc is called with -1 or +1 when a navigation glyph is activated.
type NavigateFunc func(delta int) error

// Scene is a complete drawable chart: one strip per year, most recent first.
type Scene struct {
	ID     string
	Width  float64
	Height float64
	Strips []*Group

	navigate NavigateFunc
}

// Click activates t. Only navigation glyphs react; the injected
// [NavigateFunc] runs synchronously and its error is returned.
func (s *Scene) Click(t *Text) error {
	if s == nil || t == nil || !t.Clickable() || s.navigate == nil {
		return nil
	}
	return s.navigate(t.Nav)
}

// Walk visits every node depth-first in draw order. Returning false from fn
// skips the children of a group.
func (s *Scene) Walk(fn func(Node) bool) {
	if s == nil {
		return
	}
	for _, g := range s.Strips {
		walk(g, fn)
	}
}

func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			walk(c, fn)
		}
	}
}

// Years returns the year of every strip in draw order.
func (s *Scene) Years() []int {
	if s == nil {
		return nil
	}
	years := make([]int, len(s.Strips))
	for i, g := range s.Strips {
		years[i] = g.Year
	}
	return years
}

// Cells returns all day cells in draw order.
func (s *Scene) Cells() []*Rect {
	var cells []*Rect
	s.Walk(func(n Node) bool {
		if r, ok := n.(*Rect); ok {
			cells = append(cells, r)
		}
		return true
	})
	return cells
}

// Paths returns all month separators in draw order.
func (s *Scene) Paths() []*Path {
	var paths []*Path
	s.Walk(func(n Node) bool {
		if p, ok := n.(*Path); ok {
			paths = append(paths, p)
		}
		return true
	})
	return paths
}

// Texts returns every text node carrying class.
func (s *Scene) Texts(class string) []*Text {
	var texts []*Text
	s.Walk(func(n Node) bool {
		if t, ok := n.(*Text); ok && t.Class == class {
			texts = append(texts, t)
		}
		return true
	})
	return texts
}

// NavGlyph returns the first navigation glyph moving by delta, or nil.
func (s *Scene) NavGlyph(delta int) *Text {
	var found *Text
	s.Walk(func(n Node) bool {
		if found != nil {
			return false
		}
		if t, ok := n.(*Text); ok && t.Nav == delta && t.Clickable() {
			found = t
		}
		return true
	})
	return found
}
