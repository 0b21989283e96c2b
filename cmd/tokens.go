package cmd

import (
	"rental-app/config"
	"rental-app/database"
	authapi "rental-app/internal/api/auth"
	"rental-app/internal/infra/tokens"

	"github.com/spf13/cobra"
)

func tokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Refresh token maintenance",
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Revoke expired refresh tokens and delete old revoked ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			retention, _ := cmd.Flags().GetDuration("retention")
			if retention <= 0 {
				retention = config.REVOKED_TOKEN_RETENTION
			}
			out, err := authapi.NewService(database.DB, tokens.FromConfig()).PurgeTokens(cmd.Context(), retention)
			if err != nil {
				return err
			}
			cmd.Printf("revoked %d, deleted %d\n", out.Revoked, out.Deleted)
			return nil
		},
	}
	purge.Flags().Duration("retention", 0, "keep revoked tokens this long (default REVOKED_TOKEN_RETENTION)")

	cmd.AddCommand(purge)
	return cmd
}
