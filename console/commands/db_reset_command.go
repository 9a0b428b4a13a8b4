package commands

import (
	"context"

	"github.com/spf13/cobra"
)

type DbResetCommand struct {
	BaseCommand
	Force bool
}

func (c *DbResetCommand) GetSignature() string {
	return "db:reset"
}

func (c *DbResetCommand) GetDescription() string {
	return "Rollback all database migrations"
}

func (c *DbResetCommand) ConfigureFlags(cmd *cobra.Command) {
	forceFlag(cmd, &c.Force)
}

func (c *DbResetCommand) Execute(_ context.Context, _ []string) error {
	if !c.confirmDestructive(c.Force, "DANGER: This will rollback ALL migrations and drop every table!") {
		c.PrintInfo("Reset cancelled")
		return nil
	}

	migrator, err := c.migrator()
	if err != nil {
		return err
	}
	return migrator.Reset()
}
