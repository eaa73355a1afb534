package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
)

// animateOpts holds the command-line flags for the animate command.
type animateOpts struct {
	text     textFlags
	previous string // layout JSON of the currently rendered cloud
	output   string // base path for the .svg, .plan.json and .layout.json files
	enterMS  int
	updateMS int
	exitMS   int
}

// animateCommand creates the animate command. It diffs the layout of a new
// text against a previously rendered layout and writes an animated SVG, the
// transition plan, and the new layout to feed into the next run.
func (c *CLI) animateCommand() *cobra.Command {
	var opts animateOpts

	cmd := &cobra.Command{
		Use:   "animate [file|-]",
		Short: "Animate from a previous layout to the layout of a new text",
		Long: `Animate computes the layout for a text and compares it to --previous, the
layout currently on screen. Words that disappear fade out, words that stay
slide and resize, and new words grow in from nothing.

Outputs (base path from --output or the input name):
  <base>.svg          animated SVG
  <base>.plan.json    transition plan
  <base>.layout.json  new layout; pass it as --previous next time

Without --previous every word enters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, name, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			popts := c.options(cmd, &opts.text)
			if cmd.Flags().Changed("enter-ms") {
				popts.Durations.Enter = msDuration(opts.enterMS)
			}
			if cmd.Flags().Changed("update-ms") {
				popts.Durations.Update = msDuration(opts.updateMS)
			}
			if cmd.Flags().Changed("exit-ms") {
				popts.Durations.Exit = msDuration(opts.exitMS)
			}
			return c.runAnimate(cmd.Context(), text, name, popts, &opts)
		},
	}

	opts.text.bind(cmd)
	cmd.Flags().StringVarP(&opts.previous, "previous", "p", "", "layout JSON currently rendered")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path")
	cmd.Flags().IntVar(&opts.enterMS, "enter-ms", 0, "enter duration in milliseconds; 0 keeps the default of 800")
	cmd.Flags().IntVar(&opts.updateMS, "update-ms", 0, "update duration in milliseconds; 0 keeps the default of 800")
	cmd.Flags().IntVar(&opts.exitMS, "exit-ms", 0, "exit duration in milliseconds; 0 keeps the default of 300")

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, text, input string, popts pipeline.Options, opts *animateOpts) error {
	logger := loggerFromContext(ctx)

	prev := animate.State{}
	if opts.previous != "" {
		l, err := cloud.ReadLayoutFile(opts.previous)
		if err != nil {
			return fmt.Errorf("read previous layout: %w", err)
		}
		prev = l.State()
		logger.Infof("Loaded previous layout: %d words", prev.Len())
	}

	runner, err := c.newRunner(ctx, opts.text.noCache, opts.text.stopwords)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, _, err := runner.Animate(ctx, prev, text, popts)
	if err != nil {
		return err
	}
	popts.Formats = []string{pipeline.FormatSVG, pipeline.FormatPlan, pipeline.FormatJSON}
	if _, err := runner.Render(ctx, result, popts); err != nil {
		return err
	}

	base := basePath(opts.output, input)
	var written []string
	for _, format := range popts.Formats {
		path := base + formatExt(format)
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	plan := *result.Plan
	printSuccess("Planned %d transitions over %s", plan.Len(), plan.Longest())
	printPlan(plan)
	for _, path := range written {
		printFile(path)
	}
	printNextStep("Continue from here", fmt.Sprintf("%s animate --previous %s <next-file>", appName, base+formatExt(pipeline.FormatJSON)))
	return nil
}

func msDuration(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }
