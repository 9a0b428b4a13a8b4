package commands

import (
	"context"

	"github.com/spf13/cobra"
)

type DbDownCommand struct {
	BaseCommand
	Force bool
}

func (c *DbDownCommand) GetSignature() string {
	return "db:down"
}

func (c *DbDownCommand) GetDescription() string {
	return "Rollback the last database migration batch"
}

func (c *DbDownCommand) ConfigureFlags(cmd *cobra.Command) {
	forceFlag(cmd, &c.Force)
}

func (c *DbDownCommand) Execute(_ context.Context, _ []string) error {
	if !c.confirmDestructive(c.Force, "This will rollback the last migration batch") {
		c.PrintInfo("Rollback cancelled")
		return nil
	}

	migrator, err := c.migrator()
	if err != nil {
		return err
	}
	return migrator.Down()
}
