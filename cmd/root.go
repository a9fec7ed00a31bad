package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "GRACEFUL"

// LogConfig holds the logging flags shared by all commands.
type LogConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "graceful-shutdown",
	Short: "Graceful shutdown on termination signals",
	Long: `Demonstrates a process-wide shutdown handle: the termination signals are
watched once and every component waits on the same shutdown event.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log_level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log_json", false, "log in JSON format")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "unable to read config file %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in GRACEFUL_ prefixed env vars corresponding to the CLI flags
}

// loadConfig decodes the merged flags, env and config file into out.
func loadConfig(out interface{}) error {
	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return nil
}

func newLogger(name string, c LogConfig) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(c.LogLevel),
		JSONFormat: c.LogJSON,
		Output:     os.Stderr,
	})
}
