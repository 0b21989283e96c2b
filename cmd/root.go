package cmd

import (
	"fmt"
	"os"

	"rental-app/config"
	"rental-app/database"
	"rental-app/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   config.ServiceName,
	Short: "Property rental CMS backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		if err := logger.Init(config.LOG_LEVEL, config.APP_ENV, config.ServiceName); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return database.InitDB()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	// serve is the default command
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd(), tokensCmd())
	addServeFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
