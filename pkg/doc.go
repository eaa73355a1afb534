// Package pkg provides the core libraries for wordcloud.
//
// # Overview
//
// Wordcloud turns a text into a single-row word cloud: the most frequent
// words sized by frequency, and animated transitions when the text changes.
// The pkg directory is organized by stage:
//
//  1. [words] and [stopwords] - tokenize, count and rank
//  2. [render] - layout, transition planning and output formats
//  3. [cloud] - serialization types for layouts and plans
//  4. [pipeline] - orchestration (analyze → layout → diff → render) with caching
//  5. [cache], [session], [httputil] - infrastructure
//
// # Architecture
//
//	Text
//	  ↓
//	[words] tokenizer + frequency table (stop words from [stopwords])
//	  ↓
//	[words.Rank] top-N by count, ties by first appearance
//	  ↓
//	[render/cloud/layout] font scale + single-row placement
//	  ↓
//	[render/cloud/animate] diff against the rendered state → plan
//	  ↓
//	[render/cloud/sink] SVG / layout JSON / plan JSON
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, state, err := runner.Animate(ctx, animate.State{}, text, pipeline.Options{})
//	// later, with new text:
//	result, state, err = runner.Animate(ctx, state, newText, pipeline.Options{})
//	svg, err := pipeline.Render(result, pipeline.Options{Formats: []string{"svg"}})
//
// # Infrastructure
//
// [cache] stores layouts and rendered artifacts in files, Redis, or
// nowhere. [session] holds the rendered state of a server-side cloud in
// memory or Redis so successive texts animate from what a client shows.
// [httputil] fetches stop-word tables published over HTTP.
//
// [words]: github.com/matzehuels/wordcloud/pkg/words
// [words.Rank]: github.com/matzehuels/wordcloud/pkg/words#Rank
// [stopwords]: github.com/matzehuels/wordcloud/pkg/stopwords
// [render]: github.com/matzehuels/wordcloud/pkg/render
// [render/cloud/layout]: github.com/matzehuels/wordcloud/pkg/render/cloud/layout
// [render/cloud/animate]: github.com/matzehuels/wordcloud/pkg/render/cloud/animate
// [render/cloud/sink]: github.com/matzehuels/wordcloud/pkg/render/cloud/sink
// [cloud]: github.com/matzehuels/wordcloud/pkg/cloud
// [pipeline]: github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: github.com/matzehuels/wordcloud/pkg/cache
// [session]: github.com/matzehuels/wordcloud/pkg/session
// [httputil]: github.com/matzehuels/wordcloud/pkg/httputil
package pkg
