package animate

import "github.com/matzehuels/wordcloud/pkg/render/cloud/layout"

// Diff compares the previously rendered state with a new layout and returns
// the transition plan together with the state that replaces prev. Words
// scheduled for exit are not part of the returned state.
//
// Zero durations fall back to the defaults.
func Diff(prev State, next layout.Layout, d Durations) (Plan, State) {
	d = d.WithDefaults()
	nextState := NewState(next)

	var plan Plan
	for _, e := range prev.entries {
		if nextState.Has(e.Word) {
			continue
		}
		from := frameOf(e)
		to := from
		to.Opacity = 0
		plan.Exit = append(plan.Exit, Transition{
			Word:     e.Word,
			Kind:     Exit,
			From:     from,
			To:       to,
			Duration: d.Exit,
		})
	}

	for _, e := range nextState.entries {
		to := frameOf(e)
		old, ok := prev.Lookup(e.Word)
		if !ok {
			from := to
			from.FontSize = 0
			plan.Enter = append(plan.Enter, Transition{
				Word:     e.Word,
				Kind:     Enter,
				From:     from,
				To:       to,
				Duration: d.Enter,
			})
			continue
		}
		from := to
		from.X = old.X
		from.FontSize = old.FontSize
		plan.Update = append(plan.Update, Transition{
			Word:     e.Word,
			Kind:     Update,
			From:     from,
			To:       to,
			Duration: d.Update,
		})
	}
	return plan, nextState
}
