package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find a shortest path between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			path, err := engine.ShortestPath(context.Background(), args[0], args[1])
			if err != nil {
				fatal("path", err)
			}
			outputNodes(path)
		},
	}
}
