// Package cloud provides the serialization format for word-cloud layouts and
// transition plans.
//
// This package sits at the boundary between the computation packages and
// everything that stores or transmits their output: JSON files written by
// the CLI, HTTP responses, cached layouts and persisted session state.
//
//   - [Layout], [Word]: a placed word cloud with its geometry
//   - [Plan], [Transition]: an enter/update/exit plan with durations in ms
//
// Use [Export]/[Layout.Parse] and [ExportPlan] to convert between the wire
// types and pkg/render/cloud/layout and pkg/render/cloud/animate. The types
// carry bson tags so they can be written to MongoDB unchanged.
//
// # Layout Serialization
//
//	{
//	  "version": 1,
//	  "width": 1000,
//	  "height": 420,
//	  "margins": {"top": 20, "right": 20, "bottom": 20, "left": 20},
//	  "words": [
//	    {"word": "cat", "count": 2, "x": 124.9, "y": 190, "font_size": 110, "half_width": 99}
//	  ]
//	}
//
// Coordinates are relative to the inner frame, i.e. after the margins.
package cloud
