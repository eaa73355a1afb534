package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/sink"
)

// Render generates output artifacts in the requested formats.
//
// With a plan attached (see [Runner.Animate]) the SVG carries the plan's
// transitions; otherwise it is static. The plan format of a result without a
// plan describes every word entering an empty canvas.
func Render(result *Result, opts Options) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if result.Plan != nil {
				data = sink.RenderAnimatedSVG(result.Layout.Params, *result.Plan, svgOpts...)
			} else {
				data = sink.RenderSVG(result.Layout, svgOpts...)
			}
		case FormatJSON:
			data, err = sink.RenderJSON(result.Layout,
				sink.WithJSONStats(result.Analysis.Tokens, result.Analysis.Distinct))
		case FormatPlan:
			plan := result.Plan
			if plan == nil {
				p, _ := animate.Diff(animate.State{}, result.Layout, opts.Durations)
				plan = &p
			}
			data, err = sink.RenderPlanJSON(*plan)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.FontFamily != "" {
		out = append(out, sink.WithFontFamily(opts.FontFamily))
	}
	if opts.Fill != "" {
		out = append(out, sink.WithFill(opts.Fill))
	}
	if opts.Background != "" {
		out = append(out, sink.WithBackground(opts.Background))
	}
	return out
}
