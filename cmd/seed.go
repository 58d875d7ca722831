package cmd

import (
	"acc-portal/database"
	"acc-portal/internal/app"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the admin user and starter content",
	Long: `Creates the admin account (` + app.SeedAdminEmail + `), the default categories,
sample articles, projects, events and profiles, and a starter section
layout for every page that has none. Existing rows are left alone; the admin
password is reset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)
		return app.Seed(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
