package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
)

// Browser styles
var (
	browseTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	browseYearStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	browseDimStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	browseErrStyle   = lipgloss.NewStyle().Foreground(colorBad)
)

const cellGlyph = "■"

// weekdayLetters labels the grid rows, Monday first.
var weekdayLetters = [7]string{"M", "T", "W", "T", "F", "S", "S"}

type browseKeyMap struct {
	Prev, Next, Help, Quit key.Binding
}

var browseKeys = browseKeyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous year")),
	Next: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next year")),
	Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k browseKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Prev, k.Next, k.Quit} }

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Help, k.Quit}}
}

// browseCommand creates the browse command, a terminal host for the
// calendar.
func (c *CLI) browseCommand() *cobra.Command {
	var opts overrides

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the calendar heatmap in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts *overrides) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}
	runner, set, err := c.openRunner(ctx, cfg, opts.refresh)
	if err != nil {
		return err
	}
	defer set.Close()

	canvas := &calendar.Canvas{}
	view := &calendar.ViewState{SelectedYear: cfg.SelectedYear(c.now())}
	ctrl := runner.Controller(ctx, canvas, view)

	p := tea.NewProgram(NewBrowseModel(canvas, ctrl.Render, cfg.Palette), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	if m, ok := final.(BrowseModel); ok && m.Err != nil {
		return m.Err
	}
	return nil
}

// =============================================================================
// BrowseModel - Interactive year navigation
// =============================================================================

// navigatedMsg reports the scene mounted after a render or navigation.
type navigatedMsg struct {
	scene *calendar.Scene
	err   error
}

// BrowseModel is the bubbletea model for the terminal calendar. Renders run
// as commands; while one is in flight further navigation keys are ignored,
// so the canvas is only touched by one goroutine at a time.
type BrowseModel struct {
	Scene   *calendar.Scene
	Loading bool
	Err     error // last render error; the previous scene stays shown

	canvas  *calendar.Canvas
	render  func() error
	palette []string
	spin    spinner.Model
	help    help.Model
}

// NewBrowseModel creates a browse model drawing canvas. render mounts the
// initial scene.
func NewBrowseModel(canvas *calendar.Canvas, render func() error, palette []string) BrowseModel {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styleIconSpinner))
	h := help.New()
	h.Styles.ShortKey = browseDimStyle
	h.Styles.ShortDesc = browseDimStyle
	h.Styles.FullKey = browseDimStyle
	h.Styles.FullDesc = browseDimStyle
	return BrowseModel{canvas: canvas, render: render, palette: palette, spin: spin, help: h, Loading: true}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.mount(m.render), m.spin.Tick)
}

func (m BrowseModel) mount(fn func() error) tea.Cmd {
	canvas := m.canvas
	return func() tea.Msg {
		err := fn()
		return navigatedMsg{scene: canvas.Scene(), err: err}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Prev):
			return m.navigate(-1)
		case key.Matches(msg, browseKeys.Next):
			return m.navigate(+1)
		case key.Matches(msg, browseKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case navigatedMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.scene != nil {
			m.Scene = msg.scene
		}
	}
	return m, nil
}

// navigate clicks the glyph of the mounted scene, the same path a pointer
// click takes in a browser host.
func (m BrowseModel) navigate(delta int) (tea.Model, tea.Cmd) {
	if m.Loading || m.Scene == nil {
		return m, nil
	}
	scene, glyph := m.Scene, m.Scene.NavGlyph(delta)
	if glyph == nil {
		return m, nil
	}
	m.Loading = true
	return m, m.mount(func() error { return scene.Click(glyph) })
}

func (m BrowseModel) View() string {
	if m.Scene == nil {
		if m.Err != nil {
			return browseErrStyle.Render(errors.UserMessage(m.Err)) + "\n"
		}
		return m.spin.View() + " " + browseDimStyle.Render("Loading…") + "\n"
	}

	var b strings.Builder
	year := m.Scene.Years()[0]
	if titles := m.Scene.Texts(calendar.ClassTitle); len(titles) > 0 && titles[0].Content != "" {
		b.WriteString(browseTitleStyle.Render(titles[0].Content))
		b.WriteString("  ")
	}
	b.WriteString(browseDimStyle.Render("‹ ") + browseYearStyle.Render(fmt.Sprint(year)) + browseDimStyle.Render(" ›"))
	if m.Loading {
		b.WriteString("  " + m.spin.View())
	}
	b.WriteString("\n\n")
	b.WriteString(renderGrid(m.Scene))
	b.WriteString("\n")
	b.WriteString(renderLegend(m.palette))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(browseErrStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(browseKeys))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Grid Rendering
// =============================================================================

// renderGrid draws the first strip of s as seven rows of week columns with
// month labels above.
func renderGrid(s *calendar.Scene) string {
	cells := s.Cells()
	if len(cells) == 0 {
		return ""
	}
	weeks := 0
	for _, c := range cells {
		weeks = max(weeks, calendar.WeekIndex(c.Date)+1)
	}

	months := []rune(strings.Repeat(" ", 2*weeks+2))
	for _, c := range cells {
		if c.Date.Day() != 1 {
			continue
		}
		col := 2 + 2*calendar.WeekIndex(c.Date)
		name := c.Date.Month().String()[:3]
		for i, r := range name {
			if col+i < len(months) {
				months[col+i] = r
			}
		}
	}

	grid := make([][]string, 7)
	for row := range grid {
		grid[row] = make([]string, weeks)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}
	styles := make(map[string]lipgloss.Style)
	for _, c := range cells {
		st, ok := styles[c.Fill]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Fill))
			styles[c.Fill] = st
		}
		grid[calendar.DayIndex(c.Date)][calendar.WeekIndex(c.Date)] = st.Render(cellGlyph)
	}

	var b strings.Builder
	b.WriteString(browseDimStyle.Render(strings.TrimRight(string(months), " ")))
	b.WriteString("\n")
	for row, cols := range grid {
		b.WriteString(browseDimStyle.Render(weekdayLetters[row]))
		b.WriteString(" ")
		b.WriteString(strings.Join(cols, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLegend draws "Less ■ ■ ■ ■ More" in the palette colors.
func renderLegend(palette []string) string {
	parts := []string{browseDimStyle.Render("Less")}
	for _, color := range append([]string{calendar.NeutralColor}, palette...) {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(cellGlyph))
	}
	parts = append(parts, browseDimStyle.Render("More"))
	return "  " + strings.Join(parts, " ")
}
