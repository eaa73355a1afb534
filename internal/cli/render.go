package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// defaultBase names outputs when reading from stdin without --output.
const defaultBase = "wordcloud"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	text       textFlags
	output     string   // output file (single format) or base path (multiple)
	formats    []string // svg, json, plan
	fontFamily string
	fill       string
	background string
}

// renderCommand creates the render command for generating output files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a text as a word cloud (SVG, layout JSON or plan JSON)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			text, name, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			popts := c.options(cmd, &opts.text)
			popts.Formats = opts.formats
			popts.FontFamily = opts.fontFamily
			popts.Fill = opts.fill
			popts.Background = opts.background
			return c.runRender(cmd.Context(), text, name, popts, &opts)
		},
	}

	opts.text.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, plan (comma-separated)")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "SVG font family (default sans-serif)")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "SVG text color")
	cmd.Flags().StringVar(&opts.background, "background", "", "SVG background color")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, text, input string, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", describeInput(input))

	runner, err := c.newRunner(ctx, opts.text.noCache, opts.text.stopwords)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()
	result, err := runner.Execute(ctx, text, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range sortedKeys(paths) {
		data := result.Artifacts[format]
		if err := writeOutput(paths[format], data); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))
	}

	printSuccess("Rendered %d words", result.Stats.Words)
	for _, format := range sortedKeys(paths) {
		printFile(paths[format])
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	return nil
}

// outputPaths maps each format to its file. A single format with an
// explicit output uses it verbatim; otherwise files are named base.ext where
// base is derived from output or the input name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + formatExt(f)
	}
	return paths
}

// formatExt returns the file suffix for a format.
func formatExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".layout.json"
	case pipeline.FormatPlan:
		return ".plan.json"
	default:
		return "." + format
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, or falls back to
// defaultBase for stdin. Known format extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range []string{pipeline.FormatJSON, pipeline.FormatPlan, pipeline.FormatSVG} {
		if ext := formatExt(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	if ext := filepath.Ext(output); ext == ".json" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describeInput labels an input for messages.
func describeInput(name string) string {
	if name == "" {
		return "stdin"
	}
	return fmt.Sprintf("%q", name)
}
