package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/galaplate/petitions/database"
)

type DbCreateCommand struct {
	BaseCommand
	// Now is used for the migration timestamp; nil means time.Now.
	Now func() time.Time
}

var migrationName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (c *DbCreateCommand) GetSignature() string {
	return "db:create"
}

func (c *DbCreateCommand) GetDescription() string {
	return "Create a new Go-based migration file"
}

func (c *DbCreateCommand) Execute(_ context.Context, args []string) error {
	var name string
	if len(args) == 0 {
		name = c.AskRequired("Enter migration name (e.g., create_petitions_table)")
	} else {
		name = args[0]
	}

	if name == "" {
		return fmt.Errorf("migration name cannot be empty")
	}
	if !migrationName.MatchString(name) {
		return fmt.Errorf("invalid migration name %q: use snake_case, e.g. create_petitions_table", name)
	}

	return c.createMigration(name)
}

func (c *DbCreateCommand) createMigration(name string) error {
	migrationsDir := "db/migrations"
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	stamp := now().UTC().Format("20060102150405")
	timestamp, _ := strconv.ParseInt(stamp, 10, 64)

	filePath := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.go", stamp, name))
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("migration file %s already exists", filePath)
	}

	moduleName, err := c.GetModuleName()
	if err != nil {
		return fmt.Errorf("failed to get module name: %w", err)
	}

	content := database.CreateMigrationTemplate(moduleName, name, timestamp)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}

	c.PrintSuccess(fmt.Sprintf("Migration created: %s", filePath))
	c.HandleAutoImport("db/migrations", "migrations")
	return nil
}
