package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Prep score commands",
	}

	cmd.AddCommand(newScoreSetCmd())
	cmd.AddCommand(newScoreTotalsCmd())

	return cmd
}

func newScoreSetCmd() *cobra.Command {
	var selfPoints, opponentPoints int64

	cmd := &cobra.Command{
		Use:   "set <campaign-id> <day>",
		Short: "Set one prep day's point tallies (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int64{
				"self_points":     selfPoints,
				"opponent_points": opponentPoints,
			}
			if err := client.Put(fmt.Sprintf("/api/v1/admin/campaigns/%s/days/%s/score", args[0], args[1]), req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Score updated")
			return nil
		},
	}

	cmd.Flags().Int64Var(&selfPoints, "self", 0, "Points for our state")
	cmd.Flags().Int64Var(&opponentPoints, "opponent", 0, "Points for the opponent state")

	return cmd
}

func newScoreTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals <campaign-id>",
		Short: "Show a campaign's score totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreTotals
			if err := client.Get(fmt.Sprintf("/api/v1/campaigns/%s/score", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
