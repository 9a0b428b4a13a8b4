package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	appconfig "github.com/galaplate/petitions/config"
	"github.com/galaplate/petitions/supports"
)

// DriverConfig is the base configuration for any driver
type DriverConfig interface {
	Driver() string
	Validate() error
}

// Limits are shared by every driver.
type Limits struct {
	MaxSize      int64    `validate:"gt=0"`
	AllowedTypes []string `validate:"min=1"`
}

// Allows reports whether contentType may be stored.
func (l Limits) Allows(contentType string) bool {
	base, _, _ := strings.Cut(contentType, ";")
	return slices.Contains(l.AllowedTypes, strings.TrimSpace(base))
}

// DefaultAllowedTypes lists what the toolkit writes: exports and dumps.
func DefaultAllowedTypes() []string {
	return []string{
		"application/json",
		"application/sql",
		"application/gzip",
		"application/octet-stream",
		"text/plain",
		"text/csv",
	}
}

// DefaultMaxSize returns the default maximum file size (256MB)
func DefaultMaxSize() int64 {
	return 256 * 1024 * 1024
}

func DefaultLimits() Limits {
	return Limits{MaxSize: DefaultMaxSize(), AllowedTypes: DefaultAllowedTypes()}
}

// DefaultDisk returns filesystems.default.
func DefaultDisk() string {
	return appconfig.ConfigStringOr("filesystems.default", "local")
}

// Load reads filesystems.disks.<disk> from the application config. The
// driver defaults to the disk name.
func Load(disk string) (DriverConfig, error) {
	if disk == "" {
		disk = DefaultDisk()
	}
	prefix := "filesystems.disks." + disk + "."
	get := func(key string) string {
		return appconfig.ConfigString(prefix + key)
	}

	if appconfig.Config("filesystems.disks."+disk) == nil && disk != "local" {
		return nil, fmt.Errorf("disk %q is not configured", disk)
	}

	limits := DefaultLimits()
	if n := appconfig.ConfigInt(prefix + "max_size"); n > 0 {
		limits.MaxSize = int64(n)
	}

	var cfg DriverConfig
	switch driver := appconfig.ConfigStringOr(prefix+"driver", disk); driver {
	case "local":
		cfg = &LocalConfig{
			Limits: limits,
			Path:   appconfig.ConfigStringOr(prefix+"path", "storage/app"),
		}
	case "s3":
		expiry := appconfig.ConfigInt(prefix + "url_expiry_minutes")
		if expiry <= 0 {
			expiry = 60
		}
		cfg = &S3Config{
			Limits:                 limits,
			Region:                 get("region"),
			Bucket:                 get("bucket"),
			Endpoint:               get("endpoint"),
			AccessKey:              get("key"),
			SecretKey:              get("secret"),
			PathPrefix:             get("prefix"),
			PresignedURLExpiration: time.Duration(expiry) * time.Minute,
		}
	case "google_drive":
		cfg = &GoogleDriveConfig{
			Limits:             limits,
			ServiceAccountFile: get("credentials_file"),
			FolderID:           get("folder_id"),
		}
	default:
		return nil, fmt.Errorf("disk %q uses unsupported driver %q (supported: local, s3, google_drive)", disk, driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(driver string, cfg any) error {
	if err := supports.Validate(cfg); err != nil {
		return fmt.Errorf("%s driver: %w", driver, err)
	}
	return nil
}
