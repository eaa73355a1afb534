package animate

import (
	"testing"
	"time"
)

type call struct {
	op   string
	word string
	kind Kind
}

type recorder struct{ calls []call }

func (r *recorder) Set(word string, _ Frame) {
	r.calls = append(r.calls, call{op: "set", word: word})
}

func (r *recorder) Transition(t Transition) {
	r.calls = append(r.calls, call{op: "transition", word: t.Word, kind: t.Kind})
}

func TestApplyOrder(t *testing.T) {
	plan := Plan{
		Exit:   []Transition{{Word: "owl", Kind: Exit}},
		Enter:  []Transition{{Word: "fox", Kind: Enter}},
		Update: []Transition{{Word: "cat", Kind: Update}},
	}
	var r recorder
	Apply(&r, plan)

	want := []call{
		{"transition", "owl", Exit},
		{"transition", "cat", Update},
		{"set", "fox", 0},
		{"transition", "fox", Enter},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, r.calls[i], want[i])
		}
	}
}

func TestControllerLastCallWins(t *testing.T) {
	var r recorder
	c := NewController(&r)

	c.Render(compute(t, "cat", 2, "sat", 1))
	plan := c.Render(compute(t, "wolf", 3))

	if got := wordsOf(plan.Exit); !equalStrings(got, []string{"cat", "sat"}) {
		t.Errorf("exit = %v, want [cat sat]", got)
	}
	if got := wordsOf(plan.Enter); !equalStrings(got, []string{"wolf"}) {
		t.Errorf("enter = %v, want [wolf]", got)
	}
	s := c.State()
	if s.Len() != 1 || !s.Has("wolf") {
		t.Errorf("state = %v, want only wolf", s.Entries())
	}
}

func TestControllerOptions(t *testing.T) {
	_, seed := Diff(State{}, compute(t, "cat", 1), Durations{})
	c := NewController(nil, WithState(seed), WithDurations(Durations{Update: time.Second}))

	plan := c.Render(compute(t, "cat", 1))
	if len(plan.Update) != 1 || plan.Update[0].Duration != time.Second {
		t.Errorf("plan = %+v, want one 1s update", plan)
	}
}
