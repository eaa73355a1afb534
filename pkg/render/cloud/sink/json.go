package sink

import (
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*cloud.Layout)

// WithJSONStats records the token and distinct-word counts of the analysis
// that produced the layout.
func WithJSONStats(tokens, distinct int) JSONOption {
	return func(l *cloud.Layout) { l.Tokens, l.Distinct = tokens, distinct }
}

// RenderJSON exports l as a pretty-printed [cloud.Layout] document.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	out := cloud.Export(l)
	for _, opt := range opts {
		opt(&out)
	}
	return cloud.MarshalLayout(out)
}

// RenderPlanJSON exports plan as a pretty-printed [cloud.Plan] document.
func RenderPlanJSON(plan animate.Plan) ([]byte, error) {
	return cloud.MarshalPlan(plan)
}
