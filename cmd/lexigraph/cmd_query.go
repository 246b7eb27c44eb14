package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexigraph/lexigraph/internal/models"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Single-node lookup commands",
	}
	cmd.AddCommand(queryFindCmd())
	cmd.AddCommand(querySuccessorsCmd())
	cmd.AddCommand(queryPredecessorsCmd())
	cmd.AddCommand(queryNeighborsCmd())
	cmd.AddCommand(queryGrandchildrenCmd())
	cmd.AddCommand(queryGrandparentsCmd())
	return cmd
}

func queryFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "Look up a node by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			node, err := graphStore.GetNode(context.Background(), args[0])
			if err != nil {
				fatal("find", err)
			}
			output(node, node.ID)
		},
	}
}

// nodeListCmd builds a one-argument command that either lists related nodes
// or, with --count, prints how many there are.
func nodeListCmd(
	use, short string,
	list func(ctx context.Context, nodeID string) ([]models.NodeRef, error),
	count func(ctx context.Context, nodeID string) (int, error),
) *cobra.Command {
	var countOnly bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			if countOnly {
				n, err := count(ctx, args[0])
				if err != nil {
					fatal("count", err)
				}
				output(map[string]int{"count": n}, strconv.Itoa(n))
				return
			}
			nodes, err := list(ctx, args[0])
			if err != nil {
				fatal("list", err)
			}
			outputNodes(nodes)
		},
	}
	if count != nil {
		cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of results")
	}
	return cmd
}

func querySuccessorsCmd() *cobra.Command {
	return nodeListCmd("successors <id>", "List nodes this node points at",
		func(ctx context.Context, id string) ([]models.NodeRef, error) { return graphStore.Successors(ctx, id) },
		func(ctx context.Context, id string) (int, error) { return graphStore.CountSuccessors(ctx, id) })
}

func queryPredecessorsCmd() *cobra.Command {
	return nodeListCmd("predecessors <id>", "List nodes pointing at this node",
		func(ctx context.Context, id string) ([]models.NodeRef, error) { return graphStore.Predecessors(ctx, id) },
		func(ctx context.Context, id string) (int, error) { return graphStore.CountPredecessors(ctx, id) })
}

func queryNeighborsCmd() *cobra.Command {
	return nodeListCmd("neighbors <id>", "List neighbors in either direction",
		func(ctx context.Context, id string) ([]models.NodeRef, error) { return graphStore.Neighbors(ctx, id) },
		func(ctx context.Context, id string) (int, error) { return graphStore.CountNeighbors(ctx, id) })
}

func queryGrandchildrenCmd() *cobra.Command {
	return nodeListCmd("grandchildren <id>", "List nodes two outgoing hops away",
		func(ctx context.Context, id string) ([]models.NodeRef, error) { return graphStore.Grandchildren(ctx, id) },
		nil)
}

func queryGrandparentsCmd() *cobra.Command {
	return nodeListCmd("grandparents <id>", "List nodes two incoming hops away",
		func(ctx context.Context, id string) ([]models.NodeRef, error) { return graphStore.Grandparents(ctx, id) },
		nil)
}

func outputNodes(nodes []models.NodeRef) {
	if flagFmt == "table" {
		rows := make([][]string, 0, len(nodes))
		for _, n := range nodes {
			rows = append(rows, []string{n.ID, n.Label})
		}
		formatTable([]string{"ID", "LABEL"}, rows)
		return
	}
	quiet := ""
	if len(nodes) > 0 {
		quiet = nodes[0].ID
	}
	output(nodes, quiet)
}
