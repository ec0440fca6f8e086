package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slipway/config"
	"slipway/internal/logging"
)

func main() {
	var (
		debug      bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "slipway",
		Short:         "Package web apps into container images and launch them",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if debug {
				level = "debug"
			}
			return logging.Setup(level)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(buildCmd())
	root.AddCommand(runCmd())
	root.AddCommand(deployCmd(&configPath))
	root.AddCommand(stopCmd(&configPath))
	root.AddCommand(appsCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
