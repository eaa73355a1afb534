package animate

import (
	"fmt"
	"time"
)

// Transition durations.
const (
	DefaultEnterDuration  = 800 * time.Millisecond
	DefaultUpdateDuration = 800 * time.Millisecond
	DefaultExitDuration   = 300 * time.Millisecond
)

// Kind classifies a word in a keyed diff.
type Kind int

const (
	Enter Kind = iota
	Update
	Exit
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Update:
		return "update"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "enter":
		*k = Enter
	case "update":
		*k = Update
	case "exit":
		*k = Exit
	default:
		return fmt.Errorf("unknown transition kind %q", b)
	}
	return nil
}

// Durations holds the transition length for each kind.
type Durations struct {
	Enter  time.Duration
	Update time.Duration
	Exit   time.Duration
}

// DefaultDurations returns 800/800/300 ms.
func DefaultDurations() Durations {
	return Durations{
		Enter:  DefaultEnterDuration,
		Update: DefaultUpdateDuration,
		Exit:   DefaultExitDuration,
	}
}

// WithDefaults fills zero durations. Negative values are kept and treated as
// instantaneous by surfaces.
func (d Durations) WithDefaults() Durations {
	def := DefaultDurations()
	if d.Enter == 0 {
		d.Enter = def.Enter
	}
	if d.Update == 0 {
		d.Update = def.Update
	}
	if d.Exit == 0 {
		d.Exit = def.Exit
	}
	return d
}

// Transition moves one word from one frame to another.
type Transition struct {
	Word     string        `json:"word"`
	Kind     Kind          `json:"kind"`
	From     Frame         `json:"from"`
	To       Frame         `json:"to"`
	Duration time.Duration `json:"duration"`
}

// Remove reports whether the word leaves the surface once the transition ends.
func (t Transition) Remove() bool { return t.Kind == Exit }

// At returns the frame after elapsed time using ease. Zero or negative
// durations jump straight to To.
func (t Transition) At(elapsed time.Duration, ease Ease) Frame {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To
	}
	if elapsed <= 0 {
		return t.From
	}
	if ease == nil {
		ease = Linear
	}
	return Lerp(t.From, t.To, ease(float64(elapsed)/float64(t.Duration)))
}

// Static reports whether the transition produces no visual change.
func (t Transition) Static() bool { return t.From == t.To }

// Plan is the result of a keyed diff. The three groups are disjoint.
// Exit keeps previous render order; Enter and Update keep rank order.
type Plan struct {
	Exit   []Transition `json:"exit"`
	Enter  []Transition `json:"enter"`
	Update []Transition `json:"update"`
}

// Len returns the total number of transitions.
func (p Plan) Len() int { return len(p.Exit) + len(p.Enter) + len(p.Update) }

// All returns exit, update and enter transitions in that order.
func (p Plan) All() []Transition {
	out := make([]Transition, 0, p.Len())
	out = append(out, p.Exit...)
	out = append(out, p.Update...)
	return append(out, p.Enter...)
}

// Longest returns the longest transition duration in the plan.
func (p Plan) Longest() time.Duration {
	var d time.Duration
	for _, t := range p.All() {
		d = max(d, t.Duration)
	}
	return d
}

// Changed reports whether applying the plan alters anything on screen.
func (p Plan) Changed() bool {
	if len(p.Exit) > 0 || len(p.Enter) > 0 {
		return true
	}
	for _, t := range p.Update {
		if !t.Static() {
			return true
		}
	}
	return false
}
