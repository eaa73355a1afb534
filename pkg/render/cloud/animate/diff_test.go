package animate

import (
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func compute(t *testing.T, pairs ...any) layout.Layout {
	t.Helper()
	var ranked []words.Entry
	for i := 0; i < len(pairs); i += 2 {
		ranked = append(ranked, words.Entry{Word: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return layout.Compute(ranked, layout.DefaultParams())
}

func wordsOf(ts []Transition) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Word
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiffFromEmpty(t *testing.T) {
	l := compute(t, "cat", 2, "sat", 1, "mat", 1, "ran", 1)
	plan, state := Diff(State{}, l, Durations{})

	if len(plan.Exit) != 0 || len(plan.Update) != 0 {
		t.Fatalf("plan = %+v, want enter only", plan)
	}
	if got := wordsOf(plan.Enter); !equalStrings(got, []string{"cat", "sat", "mat", "ran"}) {
		t.Errorf("enter = %v", got)
	}
	for i, tr := range plan.Enter {
		e := l.Entries[i]
		if tr.From.FontSize != 0 || tr.From.Opacity != 1 {
			t.Errorf("%s from = %+v, want font 0 opacity 1", tr.Word, tr.From)
		}
		if tr.From.X != e.X || tr.From.Y != e.Y {
			t.Errorf("%s should start at its final position", tr.Word)
		}
		if tr.To.FontSize != e.FontSize {
			t.Errorf("%s to font = %v, want %v", tr.Word, tr.To.FontSize, e.FontSize)
		}
		if tr.Duration != DefaultEnterDuration {
			t.Errorf("%s duration = %v", tr.Word, tr.Duration)
		}
	}
	if state.Len() != 4 {
		t.Errorf("state.Len() = %d, want 4", state.Len())
	}
}

func TestDiffSameLayoutIsStatic(t *testing.T) {
	l := compute(t, "cat", 2, "sat", 1, "mat", 1, "ran", 1)
	_, state := Diff(State{}, l, Durations{})

	again := compute(t, "cat", 2, "sat", 1, "mat", 1, "ran", 1)
	plan, next := Diff(state, again, Durations{})

	if len(plan.Exit) != 0 || len(plan.Enter) != 0 {
		t.Fatalf("plan has exit/enter: %+v", plan)
	}
	if len(plan.Update) != 4 {
		t.Fatalf("update = %d, want 4", len(plan.Update))
	}
	for _, tr := range plan.Update {
		if !tr.Static() {
			t.Errorf("%s from %+v to %+v, want no change", tr.Word, tr.From, tr.To)
		}
	}
	if plan.Changed() {
		t.Error("Changed() = true, want false")
	}
	if next.Len() != state.Len() {
		t.Errorf("state length changed")
	}
}

func TestDiffToEmpty(t *testing.T) {
	tests := []struct {
		name string
		next layout.Layout
	}{
		{"empty text", layout.Compute(nil, layout.DefaultParams())},
		{"stop words only", layout.Compute([]words.Entry{}, layout.DefaultParams())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := compute(t, "wolf", 3, "moon", 1)
			_, prev := Diff(State{}, l, Durations{})

			plan, next := Diff(prev, tt.next, Durations{})
			if next.Len() != 0 {
				t.Errorf("next.Len() = %d, want 0", next.Len())
			}
			if got := wordsOf(plan.Exit); !equalStrings(got, []string{"wolf", "moon"}) {
				t.Errorf("exit = %v", got)
			}
			for _, tr := range plan.Exit {
				if tr.From.Opacity != 1 || tr.To.Opacity != 0 {
					t.Errorf("%s opacity %v -> %v, want 1 -> 0", tr.Word, tr.From.Opacity, tr.To.Opacity)
				}
				if tr.Duration != DefaultExitDuration {
					t.Errorf("%s duration = %v, want %v", tr.Word, tr.Duration, DefaultExitDuration)
				}
				if !tr.Remove() {
					t.Errorf("%s exit should remove", tr.Word)
				}
			}
		})
	}
}

func TestDiffMixed(t *testing.T) {
	_, prev := Diff(State{}, compute(t, "cat", 3, "dog", 2, "owl", 1), Durations{})
	next := compute(t, "dog", 5, "cat", 1, "fox", 1)

	plan, state := Diff(prev, next, Durations{})

	if got := wordsOf(plan.Exit); !equalStrings(got, []string{"owl"}) {
		t.Errorf("exit = %v, want [owl]", got)
	}
	if got := wordsOf(plan.Enter); !equalStrings(got, []string{"fox"}) {
		t.Errorf("enter = %v, want [fox]", got)
	}
	if got := wordsOf(plan.Update); !equalStrings(got, []string{"dog", "cat"}) {
		t.Errorf("update = %v, want [dog cat]", got)
	}

	for _, tr := range plan.Update {
		old, _ := prev.Lookup(tr.Word)
		now, _ := state.Lookup(tr.Word)
		if tr.From.X != old.X || tr.From.FontSize != old.FontSize {
			t.Errorf("%s from = %+v, want previous x=%v size=%v", tr.Word, tr.From, old.X, old.FontSize)
		}
		if tr.To.X != now.X || tr.To.FontSize != now.FontSize {
			t.Errorf("%s to = %+v, want x=%v size=%v", tr.Word, tr.To, now.X, now.FontSize)
		}
		if tr.From.Y != tr.To.Y {
			t.Errorf("%s y moves %v -> %v", tr.Word, tr.From.Y, tr.To.Y)
		}
	}
	if state.Has("owl") {
		t.Error("exiting word kept in state")
	}
}

func TestDiffCustomDurations(t *testing.T) {
	d := Durations{Enter: time.Second, Update: 2 * time.Second, Exit: 50 * time.Millisecond}
	_, prev := Diff(State{}, compute(t, "a", 1, "b", 1), d)
	plan, _ := Diff(prev, compute(t, "b", 1, "c", 1), d)

	if plan.Exit[0].Duration != d.Exit || plan.Update[0].Duration != d.Update || plan.Enter[0].Duration != d.Enter {
		t.Errorf("durations not honored: %+v", plan)
	}
	if plan.Longest() != 2*time.Second {
		t.Errorf("Longest() = %v", plan.Longest())
	}
}

func TestTransitionAt(t *testing.T) {
	tr := Transition{
		From:     Frame{X: 0, FontSize: 0, Opacity: 1},
		To:       Frame{X: 100, FontSize: 50, Opacity: 1},
		Duration: time.Second,
	}
	tests := []struct {
		elapsed time.Duration
		wantX   float64
	}{
		{-time.Second, 0},
		{0, 0},
		{500 * time.Millisecond, 50},
		{time.Second, 100},
		{2 * time.Second, 100},
	}
	for _, tt := range tests {
		if got := tr.At(tt.elapsed, Linear); got.X != tt.wantX {
			t.Errorf("At(%v).X = %v, want %v", tt.elapsed, got.X, tt.wantX)
		}
	}
	if got := (Transition{To: Frame{X: 7}}).At(0, nil); got.X != 7 {
		t.Errorf("zero duration should jump to end, got %+v", got)
	}
}

func TestCubicInOut(t *testing.T) {
	for _, x := range []float64{0, 0.5, 1} {
		if got := CubicInOut(x); got != x {
			t.Errorf("CubicInOut(%v) = %v, want %v", x, got, x)
		}
	}
	if CubicInOut(0.25) >= 0.25 || CubicInOut(0.75) <= 0.75 {
		t.Error("CubicInOut should ease in and out")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Enter: "enter", Update: "update", Exit: "exit", Kind(9): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
