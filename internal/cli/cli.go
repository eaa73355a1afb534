package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/config"
	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "wordcloud"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wordcloud lays out the most frequent words of a text",
		Long:         `Wordcloud counts the words of a text, picks the most frequent ones and lays them out on a single row sized by frequency. New texts animate from the previous cloud.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Get().Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wordcloud/config.toml)")

	root.AddCommand(c.computeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stopwordsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the logger to the command context
// and routes observability hooks to the debug log.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	hooks := newLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use with the configured cache
// and the stop-word table named by source ("" selects the configured one).
func (c *CLI) newRunner(ctx context.Context, noCache bool, source string) (*pipeline.Runner, error) {
	cch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)

	cfg := c.Config
	if source != "" {
		cfg.Text.Stopwords = source
	}
	if _, err := runner.LoadStopwords(ctx, cfg.StopwordsSource()); err != nil {
		_ = runner.Close()
		return nil, err
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.Disable("--no-cache"), nil
	}

	var cch cache.Cache
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.Disable("cache.backend is none"), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Redis)
		if err != nil {
			return nil, err
		}
		cch = rc
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.Disable("no cache directory: " + err.Error()), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, continuing without cache", "dir", dir, "error", err)
			return cache.Disable("file cache unavailable"), nil
		}
		cch = fc
	}
	return cache.WithMaxTTL(cch, time.Duration(c.Config.Cache.TTL)), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/wordcloud/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// textFlags are the analysis and layout flags shared by text commands.
type textFlags struct {
	topN        int
	width       float64
	height      float64
	fontMin     float64
	fontMax     float64
	punctuation string
	stopwords   string
	noCache     bool
	refresh     bool
}

func (f *textFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.topN, "top", "n", 0, "number of words to place (default from config, 5)")
	fs.Float64Var(&f.width, "width", 0, "canvas width including margins")
	fs.Float64Var(&f.height, "height", 0, "canvas height including margins")
	fs.Float64Var(&f.fontMin, "font-min", 0, "font size of the least frequent word")
	fs.Float64Var(&f.fontMax, "font-max", 0, "font size of the most frequent word")
	fs.StringVar(&f.punctuation, "punctuation", "", "characters stripped before splitting")
	fs.StringVar(&f.stopwords, "stopwords", "", "stop-word table: builtin, a file path, an http(s) URL or a mongodb:// URI")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// options returns the config-derived options with explicitly set flags on top.
func (c *CLI) options(cmd *cobra.Command, f *textFlags) pipeline.Options {
	opts := c.Config.Options()
	changed := cmd.Flags().Changed
	if changed("top") {
		opts.TopN = f.topN
	}
	if changed("width") {
		opts.Params.Width = f.width
	}
	if changed("height") {
		opts.Params.Height = f.height
	}
	if changed("font-min") {
		opts.Params.FontMin = f.fontMin
	}
	if changed("font-max") {
		opts.Params.FontMax = f.fontMax
	}
	if changed("punctuation") {
		opts.Punctuation = f.punctuation
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Input / Output
// =============================================================================

// readText reads the text argument: a file path, or stdin for "-" or none.
// The returned name labels the input in messages and derived file names.
func readText(args []string, stdin io.Reader) (text, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path via openOutput.
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
