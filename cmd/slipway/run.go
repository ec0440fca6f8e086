package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slipway/internal/adapters/docker"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <image>",
		Short: "Start a container from a prebuilt image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := docker.NewAdapter()
			if err != nil {
				return err
			}
			id, err := rt.StartContainer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
