package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	text   textFlags
	output string // layout JSON destination; stdout when empty
	table  bool   // print the ranking table instead of JSON
}

// computeCommand creates the compute command, which analyzes a text and
// emits the layout as JSON.
func (c *CLI) computeCommand() *cobra.Command {
	var opts computeOpts

	cmd := &cobra.Command{
		Use:   "compute [file|-]",
		Short: "Compute the word-cloud layout of a text",
		Long: `Compute tokenizes a text, counts words, keeps the most frequent ones and
lays them out on a single row. The layout is printed as JSON.

Reads from stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runCompute(cmd.Context(), text, c.options(cmd, &opts.text), &opts)
		},
	}

	opts.text.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a ranking table instead of JSON")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, text string, popts pipeline.Options, opts *computeOpts) error {
	runner, err := c.newRunner(ctx, opts.text.noCache, opts.text.stopwords)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	popts.Formats = []string{pipeline.FormatJSON}
	result, err := runner.Execute(ctx, text, popts)
	if err != nil {
		return err
	}

	if opts.table {
		printRanking(result.Layout)
		printStats(result.Stats, result.CacheInfo.LayoutHit)
		return nil
	}

	if err := writeOutput(opts.output, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		prog.done(fmt.Sprintf("Computed %d words", result.Stats.Words))
		printFile(opts.output)
		printStats(result.Stats, result.CacheInfo.LayoutHit)
	} else {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
