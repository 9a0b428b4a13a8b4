package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/galaplate/petitions/supports"
)

type MakeSeederCommand struct {
	BaseCommand
}

func (c *MakeSeederCommand) GetSignature() string {
	return "make:seeder"
}

func (c *MakeSeederCommand) GetDescription() string {
	return "Create a new database seeder"
}

func (c *MakeSeederCommand) Execute(_ context.Context, args []string) error {
	var seederName string
	if len(args) == 0 {
		seederName = c.AskRequired("Enter seeder name (e.g., PetitionSeeder)")
	} else {
		seederName = args[0]
	}

	if seederName == "" {
		return fmt.Errorf("seeder name cannot be empty")
	}
	if err := c.ValidateName(seederName, "Seeder"); err != nil {
		return err
	}

	return c.createSeeder(seederName)
}

func (c *MakeSeederCommand) createSeeder(name string) error {
	structName := c.FormatStructName(name)
	filePath := filepath.Join("db/seeders", supports.SnakeCase(structName)+".go")

	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("seeder file %s already exists", filePath)
	}

	moduleName, err := c.GetModuleName()
	if err != nil {
		return fmt.Errorf("failed to get module name: %w", err)
	}

	if err := c.GenerateFromStub("seeder.go.stub", filePath, SeederTemplate{
		StructName: structName,
		ModuleName: moduleName,
		Timestamp:  time.Now().Format("2006-01-02 15:04:05"),
	}); err != nil {
		return err
	}

	c.HandleAutoImport("db/seeders", "seeders")

	c.PrintSuccess(fmt.Sprintf("Seeder created successfully: %s", filePath))
	c.Printf("🌱 Run with: go run . db:seed %s\n", structName)
	return nil
}

type SeederTemplate struct {
	StructName string
	ModuleName string
	Timestamp  string
}
