package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "hearing-server",
		Short:         "Court hearing time service",
		Long:          "hearing-server polls the case store, caches the latest snapshot in Redis and serves the live, calendar, upcoming and completed hearing views.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default ./hearings.yaml if present)")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newClassifyCmd(&configPath),
		newConfigCmd(),
	)
	return rootCmd
}
