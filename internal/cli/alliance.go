package cli

import (
	"github.com/spf13/cobra"
)

func newAllianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alliance",
		Short: "Alliance registry commands",
	}

	cmd.AddCommand(newAllianceSaveCmd())
	cmd.AddCommand(newAllianceListCmd())

	return cmd
}

func newAllianceSaveCmd() *cobra.Command {
	var tag, name, status string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update an alliance (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"tag":    tag,
				"name":   name,
				"status": status,
			}
			if err := client.Put("/api/v1/admin/alliances", req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Alliance saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Alliance tag (required)")
	cmd.Flags().StringVar(&name, "name", "", "Alliance name (required)")
	cmd.Flags().StringVar(&status, "status", "active", "Status: active, inactive")
	_ = cmd.MarkFlagRequired("tag")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAllianceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Alliance
			if err := client.Get("/api/v1/alliances", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
