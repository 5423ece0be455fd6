package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/database"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/seed"
)

var (
	seedSamples bool
	seedMigrate bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load departments, the super admin and AI tools",
	Long: `Create the default departments, a super admin account and the AI tool catalogue.
The super admin uses SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD; a temporary
password is generated and printed when the latter is empty. Existing records
are left untouched, so the command can be run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, logger, err := openDatabase()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if seedMigrate {
			if err := database.Migrate(db, logger); err != nil {
				return err
			}
		}

		seeder := seed.NewSeeder(
			repository.NewUserRepository(db),
			repository.NewDepartmentRepository(db),
			repository.NewAIToolRepository(db),
			auth.NewPasswordHasher(globalConfig.BcryptCost),
			logger,
		)

		result, err := seeder.Run(cmd.Context(), seed.Options{
			AdminEmail:    globalConfig.SeedAdminEmail,
			AdminPassword: globalConfig.SeedAdminPassword,
			WithSamples:   seedSamples,
		})
		if err != nil {
			return err
		}

		color.Green("Seeded %d departments and %d AI tools", result.Departments, result.AITools)
		if len(result.Users) == 0 {
			fmt.Println("No new users were created")
			return nil
		}

		fmt.Println()
		fmt.Println("New users:")
		for _, cred := range result.Users {
			if cred.Password == "" {
				fmt.Printf("  %-12s %s\n", cred.Role, cred.Email)
				continue
			}
			fmt.Printf("  %-12s %s  ", cred.Role, cred.Email)
			color.Yellow("temporary password: %s", cred.Password)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedSamples, "samples", false, "also create a sample manager with two reports")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", true, "run migrations before seeding")
}
