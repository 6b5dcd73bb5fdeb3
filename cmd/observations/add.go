package main

import (
	"github.com/entrhq/forge-meta/pkg/observations"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var in observations.NewObservation
	var area string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new observation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fa, err := observations.ParseFeatureArea(area)
			if err != nil {
				return err
			}
			in.FeatureArea = fa

			obs, err := a.store.Add(in)
			if err != nil {
				return err
			}
			return a.printJSON(obs)
		},
	}

	cmd.Flags().StringVar(&in.Description, "description", "", "Description of the observed behavior")
	cmd.Flags().StringVar(&area, "feature-area", "", "Feature area category (tools, skills, agents, mcp, config, other)")
	cmd.Flags().StringVar(&in.Context, "context", "", "Context of how it was discovered")
	cmd.Flags().StringVar(&in.IssueURL, "issue-url", "", "Issue URL if already submitted")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("feature-area")
	return cmd
}
