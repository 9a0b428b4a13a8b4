package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/galaplate/petitions/supports"
)

type MakeFactoryCommand struct {
	BaseCommand
}

func (c *MakeFactoryCommand) GetSignature() string {
	return "make:factory"
}

func (c *MakeFactoryCommand) GetDescription() string {
	return "Create a new model factory"
}

func (c *MakeFactoryCommand) Execute(_ context.Context, args []string) error {
	var modelName string
	if len(args) == 0 {
		modelName = c.AskRequired("Enter model name (e.g., Petition)")
	} else {
		modelName = args[0]
	}

	if modelName == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if err := c.ValidateName(modelName, ""); err != nil {
		return err
	}

	return c.createFactory(modelName)
}

func (c *MakeFactoryCommand) createFactory(name string) error {
	structName := c.FormatStructName(name)
	filePath := filepath.Join("db/factories", supports.SnakeCase(structName)+"_factory.go")

	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("factory file %s already exists", filePath)
	}

	moduleName, err := c.GetModuleName()
	if err != nil {
		return fmt.Errorf("failed to get module name: %w", err)
	}

	factoryName := structName + "Factory"
	if err := c.GenerateFromStub("factory.go.stub", filePath, FactoryTemplate{
		FactoryName:        factoryName,
		FactoryConstructor: "New" + factoryName,
		ModelName:          structName,
		Timestamp:          time.Now().Format("2006-01-02 15:04:05"),
		ModuleName:         moduleName,
	}); err != nil {
		return err
	}

	c.PrintSuccess(fmt.Sprintf("Factory created successfully: %s", filePath))
	c.Printf("📝 Factory struct: %s\n", factoryName)
	c.Printf("📝 Model: models.%s\n", structName)
	return nil
}

type FactoryTemplate struct {
	FactoryName        string
	FactoryConstructor string
	ModelName          string
	Timestamp          string
	ModuleName         string
}
