// Package sink writes word-cloud layouts and transition plans to output
// formats.
//
// [RenderSVG] produces a static SVG of a layout. [SVGSurface] implements
// [animate.Surface]: applying a plan to it yields an SVG document whose words
// carry SMIL <animate> elements, so opening the file replays the
// enter/update/exit transitions. [RenderJSON] and [RenderPlanJSON] export
// the wire formats from pkg/cloud.
//
// All coordinates are inner-frame coordinates; the SVG wraps words in a group
// translated by the left and top margins.
package sink
