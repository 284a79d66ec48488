package main

import (
	"github.com/adamanr/dreamteam/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply or inspect the database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close()

		return database.Migrate(cmd.Context(), s.db, args[0], logger)
	},
}
