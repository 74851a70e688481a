package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Campaign lifecycle commands",
	}

	cmd.AddCommand(newCampaignCreateCmd())
	cmd.AddCommand(newCampaignActiveCmd())
	cmd.AddCommand(newCampaignGetCmd())
	cmd.AddCommand(newCampaignHistoryCmd())
	cmd.AddCommand(newCampaignVictorCmd())
	cmd.AddCommand(newCampaignCompleteCmd())
	cmd.AddCommand(newCampaignDaysCmd())
	cmd.AddCommand(newCampaignSlotsCmd())

	return cmd
}

func newCampaignCreateCmd() *cobra.Command {
	var opponent, battleDate string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new campaign (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"opponent_state": opponent,
				"battle_date":    battleDate,
			}
			var result Campaign

			if err := client.Post("/api/v1/admin/campaigns", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent state name (required)")
	cmd.Flags().StringVar(&battleDate, "battle-date", "", "Battle date, a Saturday, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("opponent")
	_ = cmd.MarkFlagRequired("battle-date")

	return cmd
}

func newCampaignActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the active campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Campaign
			if err := client.Get("/api/v1/campaigns/active", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCampaignGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <campaign-id>",
		Short: "Show one campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Campaign
			if err := client.Get("/api/v1/campaigns/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCampaignHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed campaigns, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Campaign
			if err := client.Get("/api/v1/campaigns/history", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCampaignVictorCmd() *cobra.Command {
	var victor string

	cmd := &cobra.Command{
		Use:   "victor <campaign-id>",
		Short: "Record the battle outcome (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"victor": victor}
			if err := client.Put(fmt.Sprintf("/api/v1/admin/campaigns/%s/victor", args[0]), req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Victor recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&victor, "victor", "", "Battle outcome: self or opponent (required)")
	_ = cmd.MarkFlagRequired("victor")

	return cmd
}

func newCampaignCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <campaign-id>",
		Short: "Archive the campaign (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/admin/campaigns/%s/complete", args[0]), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Campaign completed")
			return nil
		},
	}
}

func newCampaignDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <campaign-id>",
		Short: "List a campaign's prep days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PrepDay
			if err := client.Get(fmt.Sprintf("/api/v1/campaigns/%s/prep-days", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCampaignSlotsCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "slots <campaign-id>",
		Short: "List a campaign's slots, optionally for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/campaigns/%s/slots", args[0])
			if day != "" {
				path = fmt.Sprintf("/api/v1/campaigns/%s/days/%s/slots", args[0], day)
			}

			var result []Slot
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Limit to one prep day (YYYY-MM-DD)")

	return cmd
}
