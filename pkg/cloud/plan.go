package cloud

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
)

// Plan is the wire form of [animate.Plan].
type Plan struct {
	Exit   []Transition `json:"exit" bson:"exit"`
	Enter  []Transition `json:"enter" bson:"enter"`
	Update []Transition `json:"update" bson:"update"`
}

// Frame mirrors [animate.Frame].
type Frame struct {
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	FontSize float64 `json:"font_size" bson:"font_size"`
	Opacity  float64 `json:"opacity" bson:"opacity"`
}

// Transition is one keyed transition. Duration is in milliseconds.
type Transition struct {
	Word       string `json:"word" bson:"word"`
	Kind       string `json:"kind" bson:"kind"`
	From       Frame  `json:"from" bson:"from"`
	To         Frame  `json:"to" bson:"to"`
	DurationMS int64  `json:"duration_ms" bson:"duration_ms"`
	Remove     bool   `json:"remove,omitempty" bson:"remove,omitempty"`
}

// ExportPlan converts a plan to its wire form. Empty groups encode as [].
func ExportPlan(p animate.Plan) Plan {
	return Plan{
		Exit:   exportTransitions(p.Exit),
		Enter:  exportTransitions(p.Enter),
		Update: exportTransitions(p.Update),
	}
}

// Parse converts the wire form back to an [animate.Plan]. Each transition
// takes its kind from the group it is listed in.
func (p Plan) Parse() animate.Plan {
	return animate.Plan{
		Exit:   parseTransitions(p.Exit, animate.Exit),
		Enter:  parseTransitions(p.Enter, animate.Enter),
		Update: parseTransitions(p.Update, animate.Update),
	}
}

// MarshalPlan serializes a plan to pretty-printed JSON bytes.
func MarshalPlan(p animate.Plan) ([]byte, error) {
	return json.MarshalIndent(ExportPlan(p), "", "  ")
}

func exportTransitions(ts []animate.Transition) []Transition {
	out := make([]Transition, len(ts))
	for i, t := range ts {
		out[i] = Transition{
			Word:       t.Word,
			Kind:       t.Kind.String(),
			From:       Frame(t.From),
			To:         Frame(t.To),
			DurationMS: t.Duration.Milliseconds(),
			Remove:     t.Remove(),
		}
	}
	return out
}

func parseTransitions(ts []Transition, kind animate.Kind) []animate.Transition {
	if len(ts) == 0 {
		return nil
	}
	out := make([]animate.Transition, len(ts))
	for i, t := range ts {
		out[i] = animate.Transition{
			Word:     t.Word,
			Kind:     kind,
			From:     animate.Frame(t.From),
			To:       animate.Frame(t.To),
			Duration: time.Duration(t.DurationMS) * time.Millisecond,
		}
	}
	return out
}
