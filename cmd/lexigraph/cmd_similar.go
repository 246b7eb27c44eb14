package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newSimilarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similar <id>",
		Short: "Find nodes sharing a typed connection with this node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			results, err := engine.FindSimilar(context.Background(), args[0])
			if err != nil {
				fatal("similar", err)
			}
			quiet := ""
			if len(results) > 0 {
				quiet = results[0].ID
			}
			output(results, quiet)
		},
	}
}
