package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deployCmd(configPath *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "deploy <dir|repo-url>",
		Short: "Build an app image and launch its container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			dep, err := a.deployer.Deploy(cmd.Context(), sourceFrom(args[0]), name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deployed %s: image=%s container=%s port=%d\n",
				dep.AppName, dep.Image, dep.ContainerID[:12], dep.Port)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "App name (required for repo sources)")
	return cmd
}

func stopCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <deployment-id>",
		Short: "Stop a deployment's container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.deployer.Stop(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stopped", args[0])
			return nil
		},
	}
}
