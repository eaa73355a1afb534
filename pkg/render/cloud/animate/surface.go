package animate

import (
	"sync"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// Surface is a rendering target keyed by word text.
//
// Set places a word immediately, creating it if needed. Transition schedules
// a timed change from t.From to t.To and replaces any transition already in
// flight for the same word. When t.Remove() is true the word is dropped from
// the surface once the transition completes.
type Surface interface {
	Set(word string, f Frame)
	Transition(t Transition)
}

// Apply schedules every transition of a plan on s. Entering words are placed
// at their starting frame first.
func Apply(s Surface, p Plan) {
	for _, t := range p.Exit {
		s.Transition(t)
	}
	for _, t := range p.Update {
		s.Transition(t)
	}
	for _, t := range p.Enter {
		s.Set(t.Word, t.From)
		s.Transition(t)
	}
}

// Controller owns the rendered state for one surface. Each call to Render
// diffs against the state left by the previous call and applies the plan,
// so the last call always wins.
type Controller struct {
	mu        sync.Mutex
	surface   Surface
	state     State
	durations Durations
}

// ControllerOption configures a [Controller].
type ControllerOption func(*Controller)

// WithDurations overrides the transition durations.
func WithDurations(d Durations) ControllerOption {
	return func(c *Controller) { c.durations = d.WithDefaults() }
}

// WithState seeds the controller with an already rendered state.
func WithState(s State) ControllerOption {
	return func(c *Controller) { c.state = s }
}

// NewController creates a controller drawing on surface.
func NewController(surface Surface, opts ...ControllerOption) *Controller {
	c := &Controller{surface: surface, durations: DefaultDurations()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render diffs l against the current state, applies the plan to the surface
// and replaces the state.
func (c *Controller) Render(l layout.Layout) Plan {
	c.mu.Lock()
	defer c.mu.Unlock()

	plan, next := Diff(c.state, l, c.durations)
	if c.surface != nil {
		Apply(c.surface, plan)
	}
	c.state = next
	return plan
}

// State returns the current rendered state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
