package cloud

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func TestExportPlan(t *testing.T) {
	_, prev := animate.Diff(animate.State{}, sample(), animate.Durations{})
	next := layout.Compute([]words.Entry{{Word: "cat", Count: 1}, {Word: "fox", Count: 1}}, layout.DefaultParams())
	plan, _ := animate.Diff(prev, next, animate.Durations{})

	data, err := MarshalPlan(plan)
	if err != nil {
		t.Fatalf("MarshalPlan() error: %v", err)
	}
	var wire Plan
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if len(wire.Exit) != 2 || len(wire.Enter) != 1 || len(wire.Update) != 1 {
		t.Fatalf("groups = %d/%d/%d, want 2/1/1", len(wire.Exit), len(wire.Enter), len(wire.Update))
	}
	if wire.Exit[0].DurationMS != 300 || !wire.Exit[0].Remove || wire.Exit[0].Kind != "exit" {
		t.Errorf("exit = %+v", wire.Exit[0])
	}
	if wire.Enter[0].DurationMS != 800 || wire.Enter[0].From.FontSize != 0 {
		t.Errorf("enter = %+v", wire.Enter[0])
	}

	back := wire.Parse()
	if back.Update[0].Kind != animate.Update || back.Update[0].Duration != 800*time.Millisecond {
		t.Errorf("parsed update = %+v", back.Update[0])
	}
	if back.Update[0].From != plan.Update[0].From {
		t.Errorf("frames differ after round trip")
	}
}

func TestExportEmptyPlan(t *testing.T) {
	data, err := MarshalPlan(animate.Plan{})
	if err != nil {
		t.Fatalf("MarshalPlan() error: %v", err)
	}
	want := "{\n  \"exit\": [],\n  \"enter\": [],\n  \"update\": []\n}"
	if string(data) != want {
		t.Errorf("MarshalPlan() = %s, want %s", data, want)
	}
}
