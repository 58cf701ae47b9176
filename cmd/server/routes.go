package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/travelmada/internal/config"
)

func newRoutesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP route table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromViper(opts.v)
			cfg.GinMode = gin.ReleaseMode
			cfg.LogLevel = "error"
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.ai.Close()
			return printRoutes(cmd.OutOrStdout(), a.engine.Routes())
		},
	}
}

func printRoutes(w io.Writer, routes gin.RoutesInfo) error {
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH")
	for _, route := range routes {
		fmt.Fprintf(tw, "%s\t%s\n", route.Method, route.Path)
	}
	return tw.Flush()
}
