package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a single observation by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := a.store.Get(args[0])
			if err != nil {
				return checkNotFound(err, args[0])
			}
			return a.printJSON(obs)
		},
	}
}
