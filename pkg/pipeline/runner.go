package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/stopwords"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Runner encapsulates pipeline execution with caching.
// CLI, TUI and API all use this to avoid duplicating caching logic.
//
// The Runner holds the cache, the logger and the active stop-word table. It
// doesn't store pipeline results or rendered state, so multiple goroutines
// can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	stop     stopwords.Set
	stopHash string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is disabled.
// The runner starts with the embedded default stop-word table.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.Disable("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	if reason, ok := cache.DisabledReason(c); ok {
		logger.Debug("caching disabled", "reason", reason)
	}
	r := &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
	r.SetStopwords(stopwords.Default())
	return r
}

// SetStopwords replaces the stop-word table. Call before serving requests.
func (r *Runner) SetStopwords(set stopwords.Set) {
	r.stop = set
	r.stopHash = cache.Hash([]byte(strings.Join(set.Words(), "\n")))
}

// Stopwords returns the active stop-word table.
func (r *Runner) Stopwords() stopwords.Set { return r.stop }

// LoadStopwords loads a table from src and makes it active. Tables from
// MongoDB are cached under [cache.Keyer.StopwordsKey] so repeated startups do
// not hit the database.
func (r *Runner) LoadStopwords(ctx context.Context, src stopwords.Source) (stopwords.Set, error) {
	name := stopwords.Describe(src)
	remote := stopwords.IsRemote(src)
	key := r.Keyer.StopwordsKey(stopwords.Identity(src))

	if remote {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			set, err := stopwords.Parse(strings.NewReader(string(data)))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "stopwords")
				r.SetStopwords(set)
				return set, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "stopwords")
	}

	set, err := src.Load(ctx)
	if err != nil {
		return stopwords.Set{}, err
	}

	if remote {
		data := []byte(strings.Join(set.Words(), "\n"))
		if err := r.Cache.Set(ctx, key, data, cache.TTLStopwords); err == nil {
			observability.Cache().OnCacheSet(ctx, "stopwords", len(data))
		}
	}

	r.Logger.Debug("loaded stop words", "source", name, "words", set.Len())
	r.SetStopwords(set)
	return set, nil
}

// Tokenizer returns a tokenizer for opts using the active table.
func (r *Runner) Tokenizer(opts Options) *words.Tokenizer {
	return words.NewTokenizer(r.stop, words.WithPunctuation(opts.Punctuation))
}

// Execute runs Compute followed by Render.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	result, err := r.Compute(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	if _, err := r.Render(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Compute analyzes text and lays out the top words, with caching.
func (r *Runner) Compute(ctx context.Context, text string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, wrapStage("invalid options", err)
	}

	if err := errors.ValidateText(text, opts.MaxTextBytes); err != nil {
		return nil, err
	}
	text = errors.NormalizeText(text)

	result := &Result{
		TextHash:  cache.Hash([]byte(text)),
		Artifacts: make(map[string][]byte),
	}
	cacheKey := r.Keyer.LayoutKey(result.TextHash, opts.LayoutKeyOpts(r.stopHash))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := cloud.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = cached.Parse()
				result.Analysis = analysisFromLayout(cached)
				result.CacheInfo.LayoutHit = true
				result.fillStats()
				opts.Logger.Debug("layout cache hit", "words", result.Stats.Words)
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Stage 1: Analyze
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(text))
	analyzeStart := time.Now()
	result.Analysis = words.Analyze(r.Tokenizer(opts), text, opts.TopN)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	hooks.OnAnalyzeComplete(ctx, result.Analysis.Tokens, result.Analysis.Distinct, result.Stats.AnalyzeTime, nil)

	opts.Logger.Info("analyzed text",
		"tokens", result.Analysis.Tokens,
		"distinct", result.Analysis.Distinct,
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Layout
	hooks.OnLayoutStart(ctx, len(result.Analysis.Ranked))
	layoutStart := time.Now()
	result.Layout = layout.Compute(result.Analysis.Ranked, opts.Params)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, result.Layout.Len(), result.Stats.LayoutTime, nil)
	result.fillStats()

	opts.Logger.Info("computed layout",
		"words", result.Stats.Words,
		"duration", result.Stats.LayoutTime)

	// Cache the result
	wire := cloud.Export(result.Layout)
	wire.Tokens, wire.Distinct = result.Analysis.Tokens, result.Analysis.Distinct
	if data, err := cloud.MarshalLayout(wire); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return result, nil
}

// Animate computes the layout for text and diffs it against prev. The
// returned state replaces prev; words in the plan's exit group are not part
// of it.
func (r *Runner) Animate(ctx context.Context, prev animate.State, text string, opts Options) (*Result, animate.State, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, prev, wrapStage("invalid options", err)
	}
	result, err := r.Compute(ctx, text, opts)
	if err != nil {
		return nil, prev, err
	}

	start := time.Now()
	plan, next := animate.Diff(prev, result.Layout, opts.Durations)
	result.Plan = &plan
	result.Stats.AnimateTime = time.Since(start)
	observability.Pipeline().OnAnimateComplete(ctx, len(plan.Enter), len(plan.Update), len(plan.Exit), result.Stats.AnimateTime)

	opts.Logger.Debug("planned transitions",
		"enter", len(plan.Enter),
		"update", len(plan.Update),
		"exit", len(plan.Exit))

	return result, next, nil
}

// Render generates artifacts for result with caching and stores them in
// result.Artifacts. Animated results are never cached since their output
// depends on the previous state.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, wrapStage("invalid options", err)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	cacheable := result.Plan == nil
	layoutHash := ""
	if cacheable {
		data, err := cloud.MarshalLayout(cloud.Export(result.Layout))
		if err != nil {
			return nil, wrapStage("serialize layout for cache key", err)
		}
		layoutHash = cache.Hash(data)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if cacheable && !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
	}

	if len(artifacts) == len(opts.Formats) {
		result.CacheInfo.RenderHit = true
		observability.Cache().OnCacheHit(ctx, "artifact")
	} else {
		rendered, err := Render(result, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, wrapStage("render", err)
		}
		artifacts = rendered
		if cacheable {
			for format, data := range rendered {
				key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
				if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
					observability.Cache().OnCacheSet(ctx, "artifact", len(data))
				}
			}
		}
	}

	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	if result.Artifacts == nil {
		result.Artifacts = make(map[string][]byte, len(artifacts))
	}
	for format, data := range artifacts {
		result.Artifacts[format] = data
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (res *Result) fillStats() {
	res.Stats.Tokens = res.Analysis.Tokens
	res.Stats.Distinct = res.Analysis.Distinct
	res.Stats.Words = res.Layout.Len()
}

func analysisFromLayout(l cloud.Layout) words.Analysis {
	ranked := make([]words.Entry, len(l.Words))
	for i, w := range l.Words {
		ranked[i] = words.Entry{Word: w.Word, Count: w.Count}
	}
	return words.Analysis{Tokens: l.Tokens, Distinct: l.Distinct, Ranked: ranked}
}
