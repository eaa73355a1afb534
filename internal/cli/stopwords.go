package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/stopwords"
)

// stopwordsCommand creates the stop-word inspection command.
func (c *CLI) stopwordsCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Inspect the stop-word table",
	}
	cmd.PersistentFlags().StringVar(&source, "source", "", "stop-word table: builtin, a file path, an http(s) URL or a mongodb:// URI (default from config)")

	cmd.AddCommand(c.stopwordsListCommand(&source))
	cmd.AddCommand(c.stopwordsCheckCommand(&source))

	return cmd
}

// stopwordsListCommand creates the "stopwords list" subcommand.
func (c *CLI) stopwordsListCommand(source *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every word in the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, name, err := c.loadStopwords(cmd, *source)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range set.Words() {
				fmt.Fprintln(out, w)
			}
			loggerFromContext(cmd.Context()).Infof("%d stop words from %s", set.Len(), name)
			return nil
		},
	}
}

// stopwordsCheckCommand creates the "stopwords check" subcommand.
func (c *CLI) stopwordsCheckCommand(source *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check WORD...",
		Short: "Report whether words would be dropped as stop words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := c.loadStopwords(cmd, *source)
			if err != nil {
				return err
			}
			for _, arg := range args {
				folded := stopwords.Fold(strings.TrimSpace(arg))
				if set.Contains(folded) {
					printKeyValue(arg, StyleWarning.Render("stop word"))
				} else {
					printKeyValue(arg, StyleSuccess.Render("kept"))
				}
			}
			return nil
		},
	}
}

// loadStopwords resolves source (or the configured table) through a runner
// so remote tables use the cache.
func (c *CLI) loadStopwords(cmd *cobra.Command, source string) (stopwords.Set, string, error) {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, false, source)
	if err != nil {
		return stopwords.Set{}, "", err
	}
	defer runner.Close()

	cfg := c.Config
	if source != "" {
		cfg.Text.Stopwords = source
	}
	return runner.Stopwords(), stopwords.Describe(cfg.StopwordsSource()), nil
}
