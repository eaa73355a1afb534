package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/config"
	"github.com/matzehuels/wordcloud/internal/server"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	rateLimit float64
	burst     int
	noCache   bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word-cloud HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := c.Config.Server
			if cmd.Flags().Changed("addr") {
				srv.Addr = opts.addr
			}
			if cmd.Flags().Changed("rate-limit") {
				srv.RateLimit = opts.rateLimit
			}
			if cmd.Flags().Changed("burst") {
				srv.Burst = opts.burst
			}
			return c.runServe(cmd.Context(), srv, opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().Float64Var(&opts.rateLimit, "rate-limit", config.DefaultRateLimit, "requests per second per client (0 disables)")
	cmd.Flags().IntVar(&opts.burst, "burst", config.DefaultBurst, "rate-limit burst size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, srv config.Server, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	s := server.New(runner, store,
		server.WithOptions(c.Config.Options()),
		server.WithSessionTTL(time.Duration(srv.SessionTTL)),
		server.WithRateLimit(srv.RateLimit, srv.Burst),
		server.WithLogger(logger),
	)
	logger.Info("starting server",
		"addr", srv.Addr,
		"cache", c.Config.Cache.Backend,
		"sessions", c.Config.Server.Sessions,
		"stopwords", runner.Stopwords().Len())

	err = s.ListenAndServe(ctx, srv.Addr)
	if err == context.Canceled {
		return nil
	}
	return err
}

// newSessionStore returns the configured rendered-state store.
func (c *CLI) newSessionStore(ctx context.Context) (session.Store, error) {
	if c.Config.Server.Sessions != config.SessionsRedis {
		return session.NewMemoryStore(), nil
	}
	rc, err := cache.NewRedisCache(ctx, c.Config.Redis)
	if err != nil {
		return nil, err
	}
	return &redisSessionStore{
		RedisStore: session.NewRedisStore(rc.Client(), session.DefaultRedisPrefix),
		conn:       rc,
	}, nil
}

// redisSessionStore closes the connection it owns along with the store.
type redisSessionStore struct {
	*session.RedisStore
	conn *cache.RedisCache
}

func (s *redisSessionStore) Close() error { return s.conn.Close() }
