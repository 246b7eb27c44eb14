package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-label>",
		Short: "Replace the label of an existing node",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := engine.RenameNode(context.Background(), args[0], args[1]); err != nil {
				fatal("rename", err)
			}
			output(map[string]string{"id": args[0], "label": args[1]}, args[0])
		},
	}
}
