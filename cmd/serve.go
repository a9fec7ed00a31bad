package cmd

import (
	"os"
	"time"

	"github.com/SumoLogic-Labs/graceful-shutdown/pkg/server"
	"github.com/SumoLogic-Labs/graceful-shutdown/pkg/signals"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type serveConfig struct {
	LogConfig     `mapstructure:",squash"`
	server.Config `mapstructure:",squash"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP server that drains on SIGINT/SIGTERM",
	Long: `Serves / (hello), /events (server-sent events), /healthz and /metrics.
On the first termination signal /healthz starts failing for --drain_delay,
then the server stops accepting connections,
finishes in-flight requests and ends open event streams.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := new(serveConfig)
		if err := loadConfig(conf); err != nil {
			return err
		}
		logger := newLogger("graceful-shutdown", conf.LogConfig)

		shutdown, err := signals.New(signals.WithLogger(logger.Named("signals")))
		if err != nil {
			return err
		}
		// The pid is what `kill -s SIGINT <pid>` needs.
		logger.Info("starting", "pid", os.Getpid())
		return server.New(conf.Config, logger.Named("server")).Run(shutdown.Done())
	},
}

func init() {
	// The flag names must match those from server.Config
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().Duration("shutdown_timeout", time.Second*30, "max time to drain connections on shutdown")
	serveCmd.Flags().Duration("drain_delay", time.Second*5, "time to fail health checks before closing the listener")
	serveCmd.Flags().Duration("event_interval", time.Second, "interval between server-sent events")
	serveCmd.Flags().Int("max_attempts", 5, "max attempts to bind the listen address")
	serveCmd.Flags().Duration("sleep", time.Second, "sleep duration between bind attempts")

	viper.BindPFlags(serveCmd.LocalFlags())
	rootCmd.AddCommand(serveCmd)
}
