// Package render groups the word-cloud rendering packages.
//
// # Overview
//
// Rendering runs in three stages, each in its own subpackage:
//
//   - [cloud/layout]: font scale and single-row placement of ranked words
//   - [cloud/animate]: diff of the on-screen state against a new layout,
//     transition plans, and a [cloud/animate.Timeline] that samples frames
//   - [cloud/sink]: output formats (static or animated SVG, layout and
//     plan JSON)
//
// The stages only share plain value types, so a layout can be computed in
// one process and animated or rendered in another:
//
//	l := layout.Compute(ranked, layout.DefaultParams())
//	plan := animate.Diff(prev, l, animate.DefaultDurations())
//	svg := sink.RenderAnimatedSVG(l, plan)
//
// [cloud/layout]: github.com/matzehuels/wordcloud/pkg/render/cloud/layout
// [cloud/animate]: github.com/matzehuels/wordcloud/pkg/render/cloud/animate
// [cloud/animate.Timeline]: github.com/matzehuels/wordcloud/pkg/render/cloud/animate#Timeline
// [cloud/sink]: github.com/matzehuels/wordcloud/pkg/render/cloud/sink
package render
