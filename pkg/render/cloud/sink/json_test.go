package sink

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sample(), WithJSONStats(9, 4))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out cloud.Layout
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 1000 || out.Height != 420 {
		t.Errorf("canvas = %vx%v, want 1000x420", out.Width, out.Height)
	}
	if out.Tokens != 9 || out.Distinct != 4 {
		t.Errorf("stats = %d/%d, want 9/4", out.Tokens, out.Distinct)
	}
	if len(out.Words) != 2 || out.Words[0].Word != "cat" {
		t.Errorf("Words = %+v", out.Words)
	}
}

func TestRenderPlanJSON(t *testing.T) {
	plan, _ := animate.Diff(animate.State{}, sample(), animate.Durations{})
	data, err := RenderPlanJSON(plan)
	if err != nil {
		t.Fatalf("RenderPlanJSON() error: %v", err)
	}
	var out cloud.Plan
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Enter) != 2 {
		t.Errorf("Enter = %d, want 2", len(out.Enter))
	}
}
