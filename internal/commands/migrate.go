package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/time-management-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Run the automatic migrations for every table and add the composite indexes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, logger, err := openDatabase()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := database.Migrate(db, logger); err != nil {
			return err
		}

		color.Green("Schema is up to date (%s)", globalConfig.DBDriver)
		return nil
	},
}
