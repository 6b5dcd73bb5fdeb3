package main

import (
	"github.com/entrhq/forge-meta/pkg/observations"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var area, status, match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all observations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f observations.Filter
			if area != "" {
				fa, err := observations.ParseFeatureArea(area)
				if err != nil {
					return err
				}
				f.FeatureArea = fa
			}
			if status != "" {
				s, err := observations.ParseStatus(status)
				if err != nil {
					return err
				}
				f.Status = s
			}
			f.Match = match

			list, err := a.store.List(f)
			if err != nil {
				return err
			}
			return a.printJSON(list)
		},
	}

	cmd.Flags().StringVar(&area, "feature-area", "", "Only show observations in this feature area")
	cmd.Flags().StringVar(&status, "status", "", "Only show observations with this status (new, submitted)")
	cmd.Flags().StringVar(&match, "match", "", "Only show observations whose ID matches this glob")
	return cmd
}
