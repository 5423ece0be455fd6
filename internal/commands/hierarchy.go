package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/time-management-api/internal/hierarchy"
	"github.com/yukikurage/time-management-api/internal/repository"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <user-id>",
	Short: "Print the users visible to a user",
	Long: `Resolve the hierarchy of a user: everyone for super admins and admins,
otherwise the user and everybody reporting to them directly or transitively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		db, logger, err := openDatabase()
		if err != nil {
			return err
		}
		defer logger.Sync()

		set, err := hierarchy.NewResolver(repository.NewUserRepository(db)).Resolve(cmd.Context(), userID)
		if err != nil {
			return err
		}
		if set.Len() == 0 {
			color.Red("User %d does not exist", userID)
			return nil
		}

		color.Cyan("%d users visible to user %d:", set.Len(), userID)
		for _, user := range set.Users() {
			manager := "-"
			if user.ManagerID != nil {
				manager = strconv.FormatUint(*user.ManagerID, 10)
			}
			line := fmt.Sprintf("  %6d  %-30s %-12s manager=%s", user.ID, user.Name, user.Role, manager)
			if user.ID == userID {
				color.Green("%s", line)
				continue
			}
			fmt.Println(line)
		}
		return nil
	},
}
