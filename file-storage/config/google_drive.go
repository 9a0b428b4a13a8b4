package config

import (
	"fmt"
	"os"
)

// GoogleDriveConfig holds Google Drive configuration
type GoogleDriveConfig struct {
	Limits
	ServiceAccountFile string `validate:"required"`
	FolderID           string `validate:"required"`
}

func (gd *GoogleDriveConfig) Driver() string {
	return "google_drive"
}

func (gd *GoogleDriveConfig) Validate() error {
	if err := validate(gd.Driver(), gd); err != nil {
		return err
	}
	if _, err := os.Stat(gd.ServiceAccountFile); err != nil {
		return fmt.Errorf("google_drive driver: service_account_file not found: %w", err)
	}
	return nil
}
