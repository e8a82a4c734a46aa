package calendar

// ViewState is the host-owned navigation state.
type ViewState struct {
	SelectedYear int
}

// Navigate moves the selected year by delta.
func (v *ViewState) Navigate(delta int) { v.SelectedYear += delta }

// Host receives rendered scenes. Mount replaces whatever the host displayed
// before, so a host never shows two scenes at once.
type Host interface {
	Mount(s *Scene)
}

// Canvas is an in-memory [Host] holding the last mounted scene.
// It is not safe for concurrent use.
type Canvas struct {
	scene  *Scene
	mounts int
}

// Mount replaces the current scene.
func (c *Canvas) Mount(s *Scene) {
	c.scene = s
	c.mounts++
}

// Scene returns the mounted scene, or nil.
func (c *Canvas) Scene() *Scene { return c.scene }

// Mounts returns how many scenes have been mounted so far.
func (c *Canvas) Mounts() int { return c.mounts }

// Click activates the navigation glyph moving by delta on the mounted scene.
func (c *Canvas) Click(delta int) error {
	return c.scene.Click(c.scene.NavGlyph(delta))
}

// Render aggregates the selected year, builds a fresh scene and mounts it on
// host. It does nothing and returns nil when host, view or cfg is nil.
func Render(host Host, view *ViewState, cfg *Config, sources []Source, opts ...BuildOption) *Scene {
	if host == nil || view == nil || cfg == nil {
		return nil
	}
	records := Aggregate(view.SelectedYear, sources)
	s := Build(records, cfg, opts...)
	if s == nil {
		return nil
	}
	host.Mount(s)
	return s
}

// Controller re-renders a host whenever its view changes.
//
// Clicking a navigation glyph of a scene mounted by the controller calls
// [Controller.Navigate], which updates View and renders again before
// returning.
type Controller struct {
	Host     Host
	View     *ViewState
	Config   *Config
	Sources  []Source
	Geometry Geometry // zero value means DefaultGeometry

	// Load, when set, runs before each aggregation so that sources can fetch
	// the selected year. An error aborts the render and keeps the previous
	// scene mounted.
	Load func(year int) error
}

// Render draws the selected year onto the host.
func (c *Controller) Render() error {
	if c == nil || c.Host == nil || c.View == nil || c.Config == nil {
		return nil
	}
	if c.Load != nil {
		if err := c.Load(c.View.SelectedYear); err != nil {
			return err
		}
	}
	geom := c.Geometry
	if geom == (Geometry{}) {
		geom = DefaultGeometry
	}
	Render(c.Host, c.View, c.Config, c.Sources, WithGeometry(geom), WithNavigate(c.Navigate))
	return nil
}

// Navigate moves the view by delta and renders again. If the render fails
// the view moves back, so it keeps matching the mounted scene.
func (c *Controller) Navigate(delta int) error {
	if c == nil || c.View == nil {
		return nil
	}
	c.View.Navigate(delta)
	if err := c.Render(); err != nil {
		c.View.Navigate(-delta)
		return err
	}
	return nil
}
