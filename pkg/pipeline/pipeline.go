// Package pipeline provides the word-cloud pipeline shared by the CLI, the
// TUI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Analyze: tokenize the text, count words and select the top N
//  2. Layout: place the ranked words on a single centered row
//  3. Animate: diff the new layout against the previously rendered state
//  4. Render: serialize to SVG, layout JSON or plan JSON
//
// Analyze and Layout are pure and run together as Compute; their output is
// cached by text hash and options. Animate reads the caller's rendered
// state and returns the state that replaces it, so the pipeline itself holds
// no per-client state.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Compute(ctx, text, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range result.Layout.Entries {
//	    fmt.Println(e.Word, e.X, e.FontSize)
//	}
//
// Animate against a previous state:
//
//	result, state, err := runner.Animate(ctx, prev, text, opts)
//	svg := result.Artifacts["svg"] // after runner.Render
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and API
// =============================================================================

// DefaultTopN is the number of words placed on the canvas.
const DefaultTopN = words.DefaultTopN

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPlan = "plan"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPlan: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Analysis options
	TopN        int    `json:"top_n,omitempty"`
	Punctuation string `json:"punctuation,omitempty"`

	// Layout options
	Params layout.Params `json:"layout"`

	// Animation options
	Durations animate.Durations `json:"-"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	Fill       string   `json:"fill,omitempty"`
	Background string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Refresh      bool        `json:"-"`
	MaxTextBytes int         `json:"-"`
	Logger       *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TextHash is the content hash of the normalized input text.
	TextHash string

	// Analysis is the tokenize/count/rank outcome.
	Analysis words.Analysis

	// Layout is the placed word row.
	Layout layout.Layout

	// Plan is set by Animate; nil for a plain Compute.
	Plan *animate.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tokens      int
	Distinct    int
	Words       int
	AnalyzeTime time.Duration
	LayoutTime  time.Duration
	AnimateTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether analysis and layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, plan)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateParams checks layout parameters after defaults are applied.
func ValidateParams(p layout.Params) error {
	if err := errors.ValidateGeometry(p.Width, p.Height, p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left); err != nil {
		return err
	}
	if p.FontMin <= 0 || p.FontMax <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font sizes must be positive")
	}
	if p.FontMin > p.FontMax {
		return errors.New(errors.ErrCodeInvalidConfig, "font_min (%g) exceeds font_max (%g)", p.FontMin, p.FontMax)
	}
	if p.MinGap < 0 || p.WidthFactor < 0 || p.PadFactor < 0 || p.PadExtra < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spacing factors cannot be negative")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if o.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "top_n cannot be negative")
	}
	if err := ValidateParams(o.Params); err != nil {
		return err
	}
	d := o.Durations
	if d.Enter < 0 || d.Update < 0 || d.Exit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations cannot be negative")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills every zero-valued option.
func (o *Options) SetDefaults() {
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.Punctuation == "" {
		o.Punctuation = words.DefaultPunctuation
	}
	o.Params = o.Params.WithDefaults()
	o.Durations = o.Durations.WithDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.MaxTextBytes <= 0 {
		o.MaxTextBytes = errors.DefaultMaxTextBytes
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for analysis and layout.
func (o *Options) LayoutKeyOpts(stopwordsHash string) cache.LayoutKeyOpts {
	p := o.Params
	return cache.LayoutKeyOpts{
		TopN:        o.TopN,
		Punctuation: o.Punctuation,
		Stopwords:   stopwordsHash,
		Width:       p.Width,
		Height:      p.Height,
		Margins:     [4]float64{p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left},
		FontMin:     p.FontMin,
		FontMax:     p.FontMax,
		MinGap:      p.MinGap,
		WidthFactor: p.WidthFactor,
		PadFactor:   p.PadFactor,
		PadExtra:    p.PadExtra,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. The plan
// format carries transition durations, so they are part of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		FontFamily: o.FontFamily,
		Fill:       o.Fill,
		Background: o.Background,
	}
	if format == FormatPlan {
		d := o.Durations.WithDefaults()
		k.Durations = [3]time.Duration{d.Enter, d.Update, d.Exit}
	}
	return k
}

func wrapStage(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
