package commands

import (
	"context"

	"github.com/galaplate/petitions/database/seeder"
	"github.com/spf13/cobra"
)

type DbFreshCommand struct {
	BaseCommand
	Force  bool
	Seed   bool
	Seeder string
}

func (c *DbFreshCommand) GetSignature() string {
	return "db:fresh"
}

func (c *DbFreshCommand) GetDescription() string {
	return "Rollback all migrations and run them again"
}

func (c *DbFreshCommand) ConfigureFlags(cmd *cobra.Command) {
	forceFlag(cmd, &c.Force)
	cmd.Flags().BoolVar(&c.Seed, "seed", false, "run the database seeder afterwards")
	cmd.Flags().StringVar(&c.Seeder, "seeder", seeder.DefaultSeeder, "seeder used with --seed")
}

func (c *DbFreshCommand) Execute(ctx context.Context, _ []string) error {
	if !c.confirmDestructive(c.Force, "DANGER: This will rollback and re-run all migrations! All data will be permanently lost!") {
		c.PrintInfo("Fresh migration cancelled")
		return nil
	}

	migrator, err := c.migrator()
	if err != nil {
		return err
	}
	if err := migrator.Refresh(); err != nil {
		return err
	}

	if !c.Seed {
		return nil
	}
	runner := seeder.NewRunner()
	runner.SetOutput(c.out())
	return runner.Run(ctx, c.Seeder)
}
