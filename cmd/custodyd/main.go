package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	envPrefix    = "CUSTODY"
	configName   = "config"
)

func main() {
	root := rootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custody")
	root := &cobra.Command{
		Use:           "custodyd",
		Short:         "Custodial escrow and balance vault node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error, none)")
	mustBind(flagHome, root)
	mustBind(flagLogLevel, root)

	root.AddCommand(
		initCmd(),
		startCmd(),
		deriveCmd(),
		versionCmd(),
	)
	return root
}

func mustBind(name string, cmd *cobra.Command) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	if err := viper.BindPFlag(name, flag); err != nil {
		panic(err)
	}
}

// loadConfig reads <home>/config.toml if present. Flags and CUSTODY_*
// environment variables take precedence over the file.
func loadConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath(viper.GetString(flagHome))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds a logger filtered by the configured level.
func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "custody")
	opt, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
