package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slipway/internal/adapters/builder"
	"slipway/internal/recipe"
)

func buildCmd() *cobra.Command {
	var (
		name string
		tag  string
	)
	cmd := &cobra.Command{
		Use:   "build <dir>",
		Short: "Build an app image from a local source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := recipe.LoadAppSpec(args[0], name)
			if err != nil {
				return err
			}
			if tag == "" {
				tag = "slipway/" + spec.Name + ":latest"
			}

			b, err := builder.NewAdapter()
			if err != nil {
				return err
			}
			built, err := b.BuildImage(cmd.Context(), sourceFrom(args[0]), spec, tag)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), built)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "App name (defaults to slipway.yaml or the directory name)")
	cmd.Flags().StringVar(&tag, "tag", "", "Image tag (defaults to slipway/<name>:latest)")
	return cmd
}
