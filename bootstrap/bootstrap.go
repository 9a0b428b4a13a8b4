package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/galaplate/petitions/config"
	"github.com/galaplate/petitions/database"
	"github.com/galaplate/petitions/env"
	"github.com/galaplate/petitions/logger"
)

// AppConfig holds configuration for initialising the toolkit
type AppConfig struct {
	// ConfigPath is the directory holding the *.yaml files.
	ConfigPath string
	// EnvFiles are loaded before the YAML files are expanded.
	EnvFiles []string
	// ConnectDatabase opens database.Connect right away instead of on the
	// first command that needs it.
	ConnectDatabase bool
	DatabaseOptions []database.OptFunc
}

// DefaultConfig returns default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ConfigPath: "./config",
		EnvFiles:   []string{".env"},
	}
}

func Init() error {
	return InitWithConfig(nil)
}

func InitWithConfig(cfg *AppConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	env.Load(cfg.EnvFiles...)

	data := map[string]any{}
	if _, err := os.Stat(cfg.ConfigPath); err == nil {
		loaded, err := config.NewLoader(cfg.ConfigPath).Load()
		if err != nil {
			return err
		}
		data = loaded
	}
	config.InitializeGlobal(data)
	config.ApplyDefaults(config.GetGlobal())

	if err := logger.Init(logger.Config{
		Channel: config.ConfigString("logging.channel"),
		Level:   config.ConfigString("logging.level"),
		Path:    config.ConfigString("logging.path"),
		MaxAge:  time.Duration(config.ConfigInt("logging.max_age_days")) * 24 * time.Hour,
	}); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}

	if cfg.ConnectDatabase {
		if err := database.New(cfg.DatabaseOptions...); err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
	}
	return nil
}
