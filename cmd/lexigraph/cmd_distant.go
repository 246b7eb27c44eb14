package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexigraph/lexigraph/internal/models"
)

func newDistantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distant",
		Short: "Distant synonym and antonym discovery",
		Long: `Walk synonym and antonym edges breadth-first from a node. Antonym edges
flip the interpretation of everything beyond them, so a node two antonym hops
away is a distant synonym while a node one antonym and one synonym hop away
is a distant antonym. Only nodes first reached at exactly the requested
distance are reported.`,
	}
	cmd.AddCommand(distantModeCmd("synonyms <id> <distance>",
		"Find synonyms at an exact distance", models.ModeSynonym))
	cmd.AddCommand(distantModeCmd("antonyms <id> <distance>",
		"Find antonyms at an exact distance", models.ModeAntonym))
	return cmd
}

func distantModeCmd(use, short string, mode models.TraversalMode) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			distance, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			nodes, err := engine.DistantNodes(context.Background(), args[0], distance, mode)
			if err != nil {
				fatal(string(mode), err)
			}
			outputNodes(nodes)
			return nil
		},
	}
}
