package cmd

import (
	"os"

	"github.com/SumoLogic-Labs/graceful-shutdown/pkg/signals"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type waitConfig struct {
	LogConfig `mapstructure:",squash"`
	ExitCode  int `mapstructure:"exit_code"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until SIGINT/SIGTERM, then exit with the given status",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := new(waitConfig)
		if err := loadConfig(conf); err != nil {
			return err
		}
		logger := newLogger("graceful-shutdown", conf.LogConfig)

		shutdown, err := signals.New(signals.WithLogger(logger.Named("signals")))
		if err != nil {
			return err
		}
		logger.Info("waiting for shutdown signal", "pid", os.Getpid())
		shutdown.Wait()
		logger.Info("exiting", "code", conf.ExitCode)
		os.Exit(conf.ExitCode)
		return nil
	},
}

func init() {
	waitCmd.Flags().Int("exit_code", 15, "exit status once the signal is received")

	viper.BindPFlags(waitCmd.LocalFlags())
	rootCmd.AddCommand(waitCmd)
}
