package commands

import (
	"github.com/galaplate/petitions/config"
	"github.com/galaplate/petitions/database"
	"github.com/spf13/cobra"
)

// connect opens the default connection unless one is already in place.
func (b *BaseCommand) connect() error {
	return database.Ensure()
}

func (b *BaseCommand) migrator() (*database.Migrator, error) {
	if err := b.connect(); err != nil {
		return nil, err
	}
	m := database.NewMigrator()
	m.SetOutput(b.out())
	return m, nil
}

// confirmDestructive asks before a destructive operation unless forced.
// In production the user has to type "yes".
func (b *BaseCommand) confirmDestructive(force bool, warning string) bool {
	if force {
		return true
	}

	b.PrintWarning(warning)
	if config.ConfigString("app.env") == "production" {
		b.PrintWarning("Application is in production!")
		return b.AskText("Type 'yes' to continue", "") == "yes"
	}
	return b.AskConfirmation("Are you sure?", false)
}

func forceFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "force", "f", false, "skip the confirmation prompt")
}
