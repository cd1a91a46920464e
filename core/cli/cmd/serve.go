package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hyperterse/reportdeck/core/config"
	transporthttp "github.com/hyperterse/reportdeck/core/infrastructure/transport/http"
	"github.com/hyperterse/reportdeck/core/infrastructure/transport/http/middleware"
	"github.com/hyperterse/reportdeck/core/logger"
)

// serveCmd serves the dashboard and report API over HTTP.
var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Serve the report dashboard over HTTP",
	RunE:          serveDashboard,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Server port (overrides config file and PORT env var)")
}

func serveDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.New("serve")

	a, err := prepareApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.container.Config
	opts := transporthttp.Options{
		Port: config.ResolvePort(port, cfg),
	}

	if rl := cfg.Server.RateLimit; rl.Enabled() {
		client, err := middleware.NewRedisClient(ctx, rl.RedisURL)
		if err != nil {
			return log.Errorf("rate limiter: %w", err)
		}
		defer client.Close()

		opts.RateLimiter = middleware.NewRedisRateLimiter(client)
		opts.RateLimit = rl.Requests
		opts.RateWindow = rl.Window
		log.Infof("Rate limiting enabled")
	}

	server := transporthttp.NewServer(opts)
	middleware.RegisterCacheGauge(server.Registry(), a.container.Cache.Len)
	transporthttp.RegisterRoutes(server.Router(), a.container.ReportService, a.container.Catalog.Source(), server.Registry())

	if err := server.Run(ctx); err != nil {
		return log.Errorf("http server: %w", err)
	}
	return nil
}
