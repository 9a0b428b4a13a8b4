package commands

import "context"

type DbStatusCommand struct {
	BaseCommand
}

func (c *DbStatusCommand) GetSignature() string {
	return "db:status"
}

func (c *DbStatusCommand) GetDescription() string {
	return "Show database migration status"
}

func (c *DbStatusCommand) Execute(_ context.Context, _ []string) error {
	migrator, err := c.migrator()
	if err != nil {
		return err
	}
	return migrator.Status()
}
