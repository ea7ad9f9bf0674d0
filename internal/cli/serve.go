package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/critpath/internal/api"
	"github.com/matzehuels/critpath/pkg/cache"
	"github.com/matzehuels/critpath/pkg/pipeline"
	"github.com/matzehuels/critpath/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // redis address for shared artifact caching (optional)
	redisPass string // redis password
	mongoURI  string // mongo URI for the circuit archive (optional)
	mongoDB   string // mongo database name
	noCache   bool   // disable artifact caching entirely
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server exposes the analysis pipeline over HTTP:
  POST /v1/analyze   netlist in, graph JSON with critical path out
  POST /v1/render    netlist in, diagram artifact out
  GET  /healthz      liveness check

With --mongo-uri, analyzed circuits can be archived and fetched back:
  POST /v1/circuits
  GET  /v1/circuits
  GET  /v1/circuits/{id}

With --redis, rendered artifacts are cached in Redis so multiple
instances share a cache; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for shared artifact caching")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "redis password")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "mongo URI for the circuit archive")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongo database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	artifactCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(artifactCache, c.Logger)
	defer runner.Close()

	var archive store.Archive
	if opts.mongoURI != "" {
		mongo, err := store.NewMongo(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return fmt.Errorf("connect to mongo: %w", err)
		}
		defer mongo.Close(context.Background())
		archive = mongo
		c.Logger.Info("circuit archive enabled", "db", opts.mongoDB)
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.New(runner, archive, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// serveCache picks the artifact cache backend for the server:
// Redis when configured, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPass,
		})
	}
	return newCache(false)
}
