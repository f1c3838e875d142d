package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
	"github.com/Naivedya-sahu/lamp-v2/pkg/server"
	"github.com/Naivedya-sahu/lamp-v2/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address override
	redis   string // Redis cache address
	mongo   string // MongoDB connection URI
	mongoDB string // MongoDB database name
	noCache bool   // disable caching
}

// newServeCmd creates the serve command, which runs the HTTP layout API.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run an HTTP server exposing the layout pipeline.

POST /api/layout accepts a netlist and responds with the computed
layout; runs persist for later retrieval via GET /api/runs. Without
--mongo, runs live in memory and vanish on restart. Without --redis,
layouts cache on the local filesystem.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (empty = config)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for shared caching (host:port)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for run persistence")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", store.DefaultDatabase, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, runner, and store together and blocks until
// the context is cancelled or the listener fails.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg := configFromContext(ctx).Server
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	st, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	return server.New(runner, st, logger, cfg).Serve(ctx)
}

// serveCache selects the cache backend: Redis when an address is given,
// otherwise the local file cache.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		c, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", opts.redis, err)
		}
		return c, nil
	}
	return newCache(false)
}

// serveStore selects the run store backend: MongoDB when a URI is given,
// otherwise in-memory.
func serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongo == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return st, nil
}
