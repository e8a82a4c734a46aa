package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/heatcal/pkg/calendar"
)

const rootStyle = "max-width: 100%; height: auto; font: 10px sans-serif;"

// NavigateEvent is the DOM event dispatched by the embedded script when a
// navigation glyph is clicked. Its detail carries {delta: -1 | 1}.
const NavigateEvent = "heatcal:navigate"

const navScript = `
    document.querySelectorAll('[data-nav]').forEach(el => {
      el.addEventListener('click', () => {
        el.dispatchEvent(new CustomEvent('` + NavigateEvent + `', { bubbles: true, detail: { delta: Number(el.getAttribute('data-nav')) } }));
      });
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	navLink func(delta int) string
	script  bool
}

// WithNavLink wraps each navigation glyph in a link to the URL returned for
// its delta. An empty URL leaves the glyph unlinked.
func WithNavLink(fn func(delta int) string) SVGOption {
	return func(r *svgRenderer) { r.navLink = fn }
}

// WithScript embeds a script dispatching [NavigateEvent] on glyph clicks.
func WithScript() SVGOption { return func(r *svgRenderer) { r.script = true } }

// RenderSVG serializes the scene as a standalone SVG document. A nil scene
// yields nil.
func RenderSVG(s *calendar.Scene, opts ...SVGOption) []byte {
	if s == nil {
		return nil
	}
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="%s" data-render="%s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height), rootStyle, escape(s.ID))

	for _, g := range s.Strips {
		r.node(&buf, g, 1)
	}

	if r.script {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", navScript)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) node(buf *bytes.Buffer, n calendar.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *calendar.Group:
		fmt.Fprintf(buf, `%s<g class="%s"`, indent, n.Class)
		if n.X != 0 || n.Y != 0 {
			fmt.Fprintf(buf, ` transform="translate(%s,%s)"`, num(n.X), num(n.Y))
		}
		if n.Year != 0 {
			fmt.Fprintf(buf, ` data-year="%d"`, n.Year)
		}
		if n.Anchor != "" {
			fmt.Fprintf(buf, ` text-anchor="%s"`, n.Anchor)
		}
		buf.WriteString(">\n")
		for _, c := range n.Children {
			r.node(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case *calendar.Text:
		r.text(buf, n, indent)
	case *calendar.Rect:
		fmt.Fprintf(buf, `%s<rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" data-date="%s"`,
			indent, n.Class, num(n.X), num(n.Y), num(n.W), num(n.H), n.Fill, calendar.FormatDate(n.Date))
		if n.Present {
			fmt.Fprintf(buf, ` data-value="%s"`, num(n.Value))
		}
		fmt.Fprintf(buf, "><title>%s</title></rect>\n", escape(n.Title))
	case *calendar.Path:
		fmt.Fprintf(buf, `%s<path class="%s" d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			indent, n.Class, n.D, n.Fill, n.Stroke, num(n.StrokeWidth))
	}
}

func (r *svgRenderer) text(buf *bytes.Buffer, t *calendar.Text, indent string) {
	href := ""
	if t.Clickable() && r.navLink != nil {
		href = r.navLink(t.Nav)
	}
	buf.WriteString(indent)
	if href != "" {
		fmt.Fprintf(buf, `<a href="%s">`, escape(href))
	}

	fmt.Fprintf(buf, `<text class="%s" x="%s" y="%s"`, t.Class, num(t.X), num(t.Y))
	if t.DY != "" {
		fmt.Fprintf(buf, ` dy="%s"`, t.DY)
	}
	if t.FontSize != 0 {
		fmt.Fprintf(buf, ` font-size="%s"`, num(t.FontSize))
	}
	if t.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if t.Anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, t.Anchor)
	}
	if t.Clickable() {
		fmt.Fprintf(buf, ` data-nav="%d" style="cursor: pointer"`, t.Nav)
	}
	fmt.Fprintf(buf, ">%s</text>", escape(t.Content))

	if href != "" {
		buf.WriteString("</a>")
	}
	buf.WriteString("\n")
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
