package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/config"
	"github.com/yukikurage/time-management-api/internal/database"
	"github.com/yukikurage/time-management-api/internal/logging"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "tmctl",
	Short: "tmctl - administration tool for the time management API",
	Long: `tmctl prepares and inspects the time management database.
It runs migrations, loads reference data and prints reporting hierarchies
using the same environment configuration as the API server.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.Execute()
}

// openDatabase connects with the global configuration. The caller owns the
// returned logger and must Sync it.
func openDatabase() (*gorm.DB, *zap.Logger, error) {
	logger, err := logging.NewLogger(globalConfig.LogLevel, globalConfig.IsProduction())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Connect(globalConfig, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hierarchyCmd)
}
