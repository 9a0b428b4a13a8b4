package commands

import "context"

type DbUpCommand struct {
	BaseCommand
}

func (c *DbUpCommand) GetSignature() string {
	return "db:up"
}

func (c *DbUpCommand) GetDescription() string {
	return "Run pending database migrations"
}

func (c *DbUpCommand) Execute(_ context.Context, _ []string) error {
	migrator, err := c.migrator()
	if err != nil {
		return err
	}
	return migrator.Up()
}
