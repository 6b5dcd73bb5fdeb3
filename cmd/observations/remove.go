package main

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an observation by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := a.store.Remove(id); err != nil {
				return checkNotFound(err, id)
			}
			a.out.Success("Removed %s", id)
			return nil
		},
	}
}
