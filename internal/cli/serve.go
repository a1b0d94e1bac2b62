package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/observability"
	"github.com/matzehuels/applyviz/pkg/observability/prom"
	"github.com/matzehuels/applyviz/pkg/pipeline"
	"github.com/matzehuels/applyviz/pkg/server"
)

type serveOpts struct {
	addr      string
	noCache   bool
	redisURL  string
	keyPrefix string
	metrics   bool
	maxBody   int64
	timeout   time.Duration
}

// serveCommand creates the serve command running the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      defaultAddr,
		keyPrefix: appName + ":",
		metrics:   true,
		maxBody:   1 << 20,
		timeout:   30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Endpoints:
  POST /v1/render?format=svg   statistics envelope to an artifact
  POST /v1/layout              statistics envelope to layout JSON
  GET  /healthz                liveness probe
  GET  /metrics                Prometheus metrics

With --redis the layout and artifact caches are shared through Redis;
otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", opts.keyPrefix, "cache key prefix in Redis")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics at /metrics")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "request body limit in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	var (
		runner *pipeline.Runner
		err    error
	)
	switch {
	case opts.redisURL != "" && !opts.noCache:
		runner, err = c.newRedisRunner(ctx, opts.redisURL, opts.keyPrefix)
	default:
		runner, err = c.newRunner(opts.noCache)
	}
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srvOpts := []server.Option{
		server.WithMaxBody(opts.maxBody),
		server.WithTimeout(opts.timeout),
	}
	if opts.metrics {
		m := prom.New(appName)
		m.Install()
		defer observability.Reset()
		srvOpts = append(srvOpts, server.WithMetrics(m.Handler()))
	}

	printSuccess("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
	printDetail("Cache: %s", cacheLabel(opts))
	p := newProgress(c.Logger)

	srv := server.New(runner, c.Logger, srvOpts...)
	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return err
	}
	p.done("Server stopped")
	return nil
}

func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func cacheLabel(opts serveOpts) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisURL != "":
		return "redis (" + opts.keyPrefix + "*)"
	default:
		return "file"
	}
}
