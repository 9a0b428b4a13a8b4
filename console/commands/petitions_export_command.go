package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/galaplate/petitions/database"
	storage "github.com/galaplate/petitions/file-storage/factory"
	"github.com/galaplate/petitions/models"
	"github.com/spf13/cobra"
)

type PetitionsExportCommand struct {
	BaseCommand
	Disk   string
	Status string
}

func (c *PetitionsExportCommand) GetSignature() string {
	return "petitions:export"
}

func (c *PetitionsExportCommand) GetDescription() string {
	return "Export petitions as JSON to a storage disk"
}

func (c *PetitionsExportCommand) ConfigureFlags(cmd *cobra.Command) {
	cmd.Use = "petitions:export [file]"
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().StringVar(&c.Disk, "disk", "", "storage disk (default: filesystems.default)")
	cmd.Flags().StringVar(&c.Status, "status", "", "only export petitions with this status")
}

func (c *PetitionsExportCommand) Execute(ctx context.Context, args []string) error {
	if c.Status != "" && !slices.Contains(models.PetitionStatuses, c.Status) {
		return fmt.Errorf("unknown status %q (expected one of %v)", c.Status, models.PetitionStatuses)
	}

	if err := c.connect(); err != nil {
		return err
	}

	query := database.Connect.WithContext(ctx).Order("id")
	if c.Status != "" {
		query = query.Where("status = ?", c.Status)
	}

	var petitions []models.Petition
	if err := query.Find(&petitions).Error; err != nil {
		return fmt.Errorf("failed to load petitions: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(petitions); err != nil {
		return err
	}

	name := fmt.Sprintf("exports/petitions_%s.json", time.Now().Format("20060102_150405"))
	if len(args) > 0 {
		name = args[0]
	}

	disk, err := storage.Disk(ctx, c.Disk)
	if err != nil {
		return err
	}
	meta, err := disk.Put(ctx, name, &buf, "application/json")
	if err != nil {
		return fmt.Errorf("failed to store export: %w", err)
	}

	c.PrintSuccess(fmt.Sprintf("Exported %d petitions to %s (%s)", len(petitions), meta.FilePath, meta.StorageType))
	if url, err := disk.GetDownloadURL(ctx, meta); err == nil && url != meta.FilePath {
		c.PrintInfo("Download: " + url)
	}
	return nil
}
