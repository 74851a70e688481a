package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Slot reservation commands",
	}

	cmd.AddCommand(newSlotBookCmd())
	cmd.AddCommand(newSlotCancelCmd())
	cmd.AddCommand(newSlotRebookCmd())
	cmd.AddCommand(newSlotReserveCmd())
	cmd.AddCommand(newSlotAdminCancelCmd())

	return cmd
}

func newSlotBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book <campaign-id> <slot-id>",
		Short: "Reserve a free slot for yourself",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/campaigns/%s/slots/%s/book", args[0], args[1]), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Slot booked")
			return nil
		},
	}
}

func newSlotCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <campaign-id> <slot-id>",
		Short: "Release your own reservation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/campaigns/%s/slots/%s/cancel", args[0], args[1]), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Reservation cancelled")
			return nil
		},
	}
}

func newSlotRebookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebook <campaign-id> <from-slot-id> <to-slot-id>",
		Short: "Move your reservation to another slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"to_slot_id": args[2]}
			if err := client.Post(fmt.Sprintf("/api/v1/campaigns/%s/slots/%s/rebook", args[0], args[1]), req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Reservation moved")
			return nil
		},
	}
}

func newSlotReserveCmd() *cobra.Command {
	var playerID, name, alliance string

	cmd := &cobra.Command{
		Use:   "reserve <campaign-id> <slot-id>",
		Short: "Reserve a slot on a player's behalf (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id":   playerID,
				"ingame_name": name,
				"alliance":    alliance,
			}
			if err := client.Post(fmt.Sprintf("/api/v1/admin/campaigns/%s/slots/%s/reserve", args[0], args[1]), req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Slot reserved")
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "id", "", "Numeric in-game player ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "In-game name (needed when the player is unknown)")
	cmd.Flags().StringVar(&alliance, "alliance", "", "Alliance tag (needed when the player is unknown)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newSlotAdminCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-cancel <campaign-id> <slot-id>",
		Short: "Clear any reservation from a slot (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/admin/campaigns/%s/slots/%s/cancel", args[0], args[1]), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Reservation cleared")
			return nil
		},
	}
}
