package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Member directory commands (admin)",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserPlaceholdersCmd())
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserApproveCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User
			if err := client.Get("/api/v1/admin/users?status="+status, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "approved", "Status filter: incomplete, pending, approved")

	return cmd
}

func newUserPlaceholdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "placeholders",
		Short: "List unlinked placeholder accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User
			if err := client.Get("/api/v1/admin/users/placeholders", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <email>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User
			if err := client.Get("/api/v1/admin/users/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newUserApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <email>",
		Short: "Approve a pending user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/admin/users/%s/approve", args[0]), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("User approved")
			return nil
		},
	}
}

func newUserUpdateCmd() *cobra.Command {
	var playerID, name, alliance, role, status string

	cmd := &cobra.Command{
		Use:   "update <email>",
		Short: "Edit a user's profile fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if playerID != "" {
				req["player_id"] = playerID
			}
			if name != "" {
				req["ingame_name"] = name
			}
			if alliance != "" {
				req["alliance"] = alliance
			}
			if role != "" {
				req["role"] = role
			}
			if status != "" {
				req["status"] = status
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update")
			}

			if err := client.Patch("/api/v1/admin/users/"+args[0], req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("User updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "id", "", "Numeric in-game player ID")
	cmd.Flags().StringVar(&name, "name", "", "In-game name")
	cmd.Flags().StringVar(&alliance, "alliance", "", "Alliance tag")
	cmd.Flags().StringVar(&role, "role", "", "Role: member, admin")
	cmd.Flags().StringVar(&status, "status", "", "Status: incomplete, pending, approved")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user and release their reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/users/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("User deleted")
			return nil
		},
	}
}
