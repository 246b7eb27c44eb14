package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Graph-wide statistics",
	}
	cmd.AddCommand(globalCountCmd("count-nodes", "Count all nodes in the graph",
		func(ctx context.Context) (int, error) { return graphStore.CountNodes(ctx) }))
	cmd.AddCommand(globalCountCmd("no-successors", "Count nodes without outgoing edges",
		func(ctx context.Context) (int, error) { return graphStore.CountNodesWithoutSuccessors(ctx) }))
	cmd.AddCommand(globalCountCmd("no-predecessors", "Count nodes without incoming edges",
		func(ctx context.Context) (int, error) { return graphStore.CountNodesWithoutPredecessors(ctx) }))
	cmd.AddCommand(globalCountCmd("single-neighbor", "Count nodes with exactly one neighbor",
		func(ctx context.Context) (int, error) { return graphStore.CountNodesWithSingleNeighbor(ctx) }))
	cmd.AddCommand(statsMostNeighborsCmd())
	return cmd
}

func globalCountCmd(use, short string, count func(ctx context.Context) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			n, err := count(context.Background())
			if err != nil {
				fatal(use, err)
			}
			output(map[string]int{"count": n}, strconv.Itoa(n))
		},
	}
}

func statsMostNeighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "most-neighbors",
		Short: "List the nodes with the highest neighbor count",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			nodes, err := graphStore.NodesWithMostNeighbors(context.Background())
			if err != nil {
				fatal("most-neighbors", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(nodes))
				for _, n := range nodes {
					rows = append(rows, []string{n.ID, n.Label, strconv.Itoa(n.Count)})
				}
				formatTable([]string{"ID", "LABEL", "NEIGHBORS"}, rows)
				return
			}
			quiet := ""
			if len(nodes) > 0 {
				quiet = nodes[0].ID
			}
			output(nodes, quiet)
		},
	}
}
