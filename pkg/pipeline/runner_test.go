package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/stopwords"
)

const scenarioA = "the cat sat on the mat. the cat ran."

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func rankedWords(r *Result) []string {
	out := make([]string, len(r.Analysis.Ranked))
	for i, e := range r.Analysis.Ranked {
		out[i] = e.Word
	}
	return out
}

func TestRunnerCompute(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Compute(context.Background(), scenarioA, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if got := strings.Join(rankedWords(res), ","); got != "cat,sat,mat,ran" {
		t.Errorf("ranked = %s, want cat,sat,mat,ran", got)
	}
	if res.Stats.Tokens != 5 || res.Stats.Distinct != 4 || res.Stats.Words != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("first run should miss the cache")
	}
	if res.Layout.Entries[0].FontSize <= res.Layout.Entries[1].FontSize {
		t.Error("cat should get the largest font")
	}
}

func TestRunnerComputeCached(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	first, err := r.Compute(ctx, scenarioA, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := r.Compute(ctx, scenarioA, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the cache")
	}
	if second.Stats.Tokens != first.Stats.Tokens || second.Stats.Distinct != first.Stats.Distinct || second.Stats.Words != first.Stats.Words {
		t.Errorf("cached stats differ: %+v vs %+v", second.Stats, first.Stats)
	}
	for i := range first.Layout.Entries {
		if first.Layout.Entries[i] != second.Layout.Entries[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first.Layout.Entries[i], second.Layout.Entries[i])
		}
	}

	third, err := r.Compute(ctx, scenarioA, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerComputeEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	for _, text := range []string{"", "the a an and", "   \n\t  ", ".,;:!"} {
		res, err := r.Compute(context.Background(), text, Options{})
		if err != nil {
			t.Fatalf("Compute(%q) error: %v", text, err)
		}
		if res.Layout.Len() != 0 {
			t.Errorf("Compute(%q) placed %d words, want 0", text, res.Layout.Len())
		}
	}
}

func TestRunnerComputeTextTooLarge(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Compute(context.Background(), strings.Repeat("x", 100), Options{MaxTextBytes: 10})
	if !errors.Is(err, errors.ErrCodeTextTooLarge) {
		t.Errorf("error = %v, want TEXT_TOO_LARGE", err)
	}
}

func TestRunnerAnimate(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	res, state, err := r.Animate(ctx, animate.State{}, scenarioA, Options{})
	if err != nil {
		t.Fatalf("Animate() error: %v", err)
	}
	if res.Plan == nil || len(res.Plan.Enter) != 4 {
		t.Fatalf("first plan = %+v, want 4 entering words", res.Plan)
	}

	res, state, err = r.Animate(ctx, state, scenarioA, Options{})
	if err != nil {
		t.Fatalf("Animate() error: %v", err)
	}
	if res.Plan.Changed() {
		t.Errorf("repeated text should not change anything: %+v", res.Plan)
	}

	res, state, err = r.Animate(ctx, state, "", Options{})
	if err != nil {
		t.Fatalf("Animate() error: %v", err)
	}
	if len(res.Plan.Exit) != 4 || state.Len() != 0 {
		t.Errorf("empty text should exit every word, got %d exits and %d left", len(res.Plan.Exit), state.Len())
	}
}

func TestRunnerRender(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatPlan}}

	res, err := r.Execute(ctx, scenarioA, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, f := range opts.Formats {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if res.CacheInfo.RenderHit {
		t.Error("first render should miss")
	}

	again, err := r.Execute(ctx, scenarioA, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second render should hit the cache")
	}
	if string(again.Artifacts[FormatSVG]) != string(res.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}
}

func TestRunnerRenderPlanKeyedByDurations(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, scenarioA, Options{Formats: []string{FormatPlan}}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	opts := Options{
		Formats:   []string{FormatPlan},
		Durations: animate.Durations{Enter: 100 * time.Millisecond},
	}
	res, err := r.Execute(ctx, scenarioA, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("changed durations should not reuse the cached plan")
	}
	if !strings.Contains(string(res.Artifacts[FormatPlan]), `"duration_ms": 100`) {
		t.Errorf("plan should carry the 100ms enter duration:\n%s", res.Artifacts[FormatPlan])
	}

	again, err := r.Execute(ctx, scenarioA, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("same durations should hit the cache")
	}
}

func TestRunnerAnimateInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	prev := animate.State{}
	_, prev, _ = r.Animate(context.Background(), prev, scenarioA, Options{})

	res, got, err := r.Animate(context.Background(), prev, "wolf", Options{
		Durations: animate.Durations{Exit: -time.Millisecond},
	})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("error = %v, want INVALID_CONFIG", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
	if got.Len() != prev.Len() {
		t.Errorf("state should be unchanged, got %d words want %d", got.Len(), prev.Len())
	}
}

func TestRenderAnimatedSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, _, err := r.Animate(context.Background(), animate.State{}, "wolf wolf wolf", Options{})
	if err != nil {
		t.Fatalf("Animate() error: %v", err)
	}
	out, err := Render(res, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(out[FormatSVG]), `attributeName="font-size"`) {
		t.Error("animated SVG should grow entering words")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := Render(&Result{}, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerLoadStopwords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("cat\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	set, err := r.LoadStopwords(context.Background(), stopwords.FileSource{Path: path})
	if err != nil {
		t.Fatalf("LoadStopwords() error: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}

	res, err := r.Compute(context.Background(), "cat cat the dog", Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if got := strings.Join(rankedWords(res), ","); got != "the,dog" {
		t.Errorf("ranked = %s, want the,dog", got)
	}
}
