package commands

import (
	"context"

	"github.com/galaplate/petitions/config"
	"github.com/galaplate/petitions/database/seeder"
	"github.com/spf13/cobra"
)

type DbSeedCommand struct {
	BaseCommand
	Force bool
}

func (c *DbSeedCommand) GetSignature() string {
	return "db:seed"
}

func (c *DbSeedCommand) GetDescription() string {
	return "Seed the database (default: DatabaseSeeder)"
}

func (c *DbSeedCommand) ConfigureFlags(cmd *cobra.Command) {
	cmd.Use = "db:seed [seeder]"
	cmd.Args = cobra.MaximumNArgs(1)
	forceFlag(cmd, &c.Force)
}

func (c *DbSeedCommand) Execute(ctx context.Context, args []string) error {
	name := seeder.DefaultSeeder
	if len(args) > 0 {
		name = args[0]
	}

	if config.ConfigString("app.env") == "production" && !c.Force {
		c.PrintWarning("Application is in production!")
		if !c.AskConfirmation("Do you really wish to run this command?", false) {
			c.PrintInfo("Seeding cancelled")
			return nil
		}
	}

	if err := c.connect(); err != nil {
		return err
	}

	runner := seeder.NewRunner()
	runner.SetOutput(c.out())
	if err := runner.Run(ctx, name); err != nil {
		return err
	}

	c.PrintSuccess("Database seeding completed successfully")
	return nil
}
