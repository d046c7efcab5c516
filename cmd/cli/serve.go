package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
	"github.com/manolaz/mosaic/internal/server"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			startupLogger, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(startupLogger)
			if err != nil {
				return err
			}
			appLogger, err := monitoring.NewZapLogger(&cfg.Log)
			if err != nil {
				return err
			}
			return server.Run(ctx, cfg, appLogger, "cli")
		},
	}
	rootCmd.AddCommand(serveCmd)
}
