package cmd

import (
	"rental-app/config"
	"rental-app/database"
	"rental-app/internal/api/amenities"
	siteapi "rental-app/internal/api/site"
	"rental-app/internal/api/users"
	"rental-app/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the amenity catalogue, default settings and the first super admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Get()

			if err := database.Migrate(database.DB); err != nil {
				return err
			}

			n, err := amenities.Seed(ctx, database.DB)
			if err != nil {
				return err
			}
			log.Info("Amenities seeded", zap.Int("inserted", n))

			n, err = siteapi.NewService(database.DB).InitializeDefaults(ctx)
			if err != nil {
				return err
			}
			log.Info("Site settings initialized", zap.Int("inserted", n))

			if config.SEED_ADMIN_EMAIL == "" {
				log.Warn("SEED_ADMIN_EMAIL not set, skipping super admin")
				return nil
			}
			created, err := users.NewService(database.DB).EnsureSuperAdmin(ctx, config.SEED_ADMIN_EMAIL, config.SEED_ADMIN_PASSWORD)
			if err != nil {
				return err
			}
			log.Info("Super admin checked", zap.String("email", config.SEED_ADMIN_EMAIL), zap.Bool("created", created))
			return nil
		},
	}
}
