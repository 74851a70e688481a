package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read the audit log, newest first (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []AuditEntry
			path := fmt.Sprintf("/api/v1/admin/audit?offset=%d&limit=%d", offset, limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to return")

	return cmd
}
