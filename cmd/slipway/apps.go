package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func appsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			deps, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAPP\tIMAGE\tPORT\tSTATUS\tCREATED")
			for _, d := range deps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					d.ID, d.AppName, d.Image, d.Port, d.Status,
					d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}
