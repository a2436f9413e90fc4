package main

import (
	"sort"

	"github.com/deppfellow/filesubmit/internal/lib/utils"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the registered HTTP routes as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, r, err := buildApp()
			if err != nil {
				return err
			}
			defer srv.LoggerService.Shutdown()

			routes := r.Routes()
			sort.Slice(routes, func(i, j int) bool {
				if routes[i].Path != routes[j].Path {
					return routes[i].Path < routes[j].Path
				}
				return routes[i].Method < routes[j].Method
			})

			return utils.PrintJSON(cmd.OutOrStdout(), routes)
		},
	}

	return cmd
}
