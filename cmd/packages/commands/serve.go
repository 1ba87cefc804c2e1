package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wanderpack/packages-cli/internal/destinations"
	"github.com/wanderpack/packages-cli/internal/obs"
	"github.com/wanderpack/packages-cli/internal/output"
	"github.com/wanderpack/packages-cli/internal/server"
)

func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the package search over HTTP",
		Example: `  packages serve
  packages serve --addr :9090 --mode hybrid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			metrics := obs.New()
			orch, err := buildOrchestrator(cfg, logger, metricHooks(metrics))
			if err != nil {
				output.JSONError("configuration error", err.Error())
				return nil
			}

			handler := server.NewHandler(orch, destinations.NewCatalog(), metrics, logger)
			srv := server.New(cfg.Server.Addr, handler, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
