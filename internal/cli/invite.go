package cli

import (
	"github.com/spf13/cobra"
)

func newInviteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite management commands (admin)",
	}

	cmd.AddCommand(newInviteCreateCmd())
	cmd.AddCommand(newInviteListCmd())
	cmd.AddCommand(newInviteCancelCmd())

	return cmd
}

func newInviteCreateCmd() *cobra.Command {
	var email, playerID, name, alliance string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Invite a player by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":       email,
				"player_id":   playerID,
				"ingame_name": name,
				"alliance":    alliance,
			}
			var result Invite

			if err := client.Post("/api/v1/admin/invites", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Invitee email (required)")
	cmd.Flags().StringVar(&playerID, "id", "", "Numeric in-game player ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "In-game name (required)")
	cmd.Flags().StringVar(&alliance, "alliance", "", "Alliance tag (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("alliance")

	return cmd
}

func newInviteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active invites",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Invite
			if err := client.Get("/api/v1/admin/invites", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newInviteCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <email>",
		Short: "Cancel an active invite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/invites/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Invite cancelled")
			return nil
		},
	}
}
