package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/galaplate/petitions/config"
	"github.com/galaplate/petitions/supports"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect is the application-wide connection, set by New.
var Connect *gorm.DB

type Config struct {
	GormConfig *gorm.Config
	// Connection names an entry under database.connections; empty means
	// database.default.
	Connection string
}

// ConnectionConfig holds the parameters of one configured connection.
type ConnectionConfig struct {
	Name     string
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

type OptFunc func(*Config)

// WithConnection selects a named connection instead of database.default.
func WithConnection(name string) OptFunc {
	return func(c *Config) {
		c.Connection = name
	}
}

// WithGormConfig replaces the gorm configuration.
func WithGormConfig(gc *gorm.Config) OptFunc {
	return func(c *Config) {
		c.GormConfig = gc
	}
}

// New opens the configured connection and stores it in Connect.
func New(opts ...OptFunc) error {
	cfg := DefaultGormConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	db, err := ConnectWithConfig(cfg)
	if err != nil {
		return err
	}
	Connect = db
	return nil
}

// Ensure connects unless a connection is already in place.
func Ensure(opts ...OptFunc) error {
	if Connect != nil {
		return nil
	}
	return New(opts...)
}

// DefaultGormConfig returns default GORM configuration
func DefaultGormConfig() *Config {
	return &Config{
		GormConfig: &gorm.Config{
			Logger: logger.New(
				log.New(os.Stdout, "\r\n", log.LstdFlags),
				logger.Config{
					SlowThreshold:             time.Second,
					LogLevel:                  gormLogLevel(config.ConfigString("database.log_level")),
					IgnoreRecordNotFoundError: true,
					ParameterizedQueries:      true,
					Colorful:                  true,
				},
			),
			DisableForeignKeyConstraintWhenMigrating: true,
		},
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectionFromConfig reads database.connections.<name>.* from config.
func ConnectionFromConfig(name string) ConnectionConfig {
	if name == "" {
		name = config.ConfigString("database.default")
	}
	name = supports.MapPostgres(name)

	key := func(field string) string {
		return config.ConfigString(fmt.Sprintf("database.connections.%s.%s", name, field))
	}

	driver := key("driver")
	if driver == "" {
		driver = name
	}

	return ConnectionConfig{
		Name:     name,
		Driver:   supports.MapPostgres(driver),
		Host:     key("host"),
		Port:     key("port"),
		Username: key("username"),
		Password: key("password"),
		Database: key("database"),
	}
}

// Dialector builds the gorm dialector for a connection.
func Dialector(conn ConnectionConfig) (gorm.Dialector, error) {
	switch conn.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			conn.Host, conn.Port, conn.Username, conn.Password, conn.Database,
		)
		return postgres.Open(dsn), nil

	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conn.Username, conn.Password, conn.Host, conn.Port, conn.Database,
		)
		return mysql.Open(dsn), nil

	case "sqlite":
		dsn := conn.Database
		if dsn == "" {
			dsn = "db/database.sqlite"
		}
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql, postgres)", conn.Driver)
	}
}

// ConnectWithConfig opens the connection described by cfg.
func ConnectWithConfig(cfg *Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = DefaultGormConfig()
	}

	return Open(ConnectionFromConfig(cfg.Connection), cfg.GormConfig)
}

// Open connects with explicit parameters, bypassing the config.
func Open(conn ConnectionConfig, gc *gorm.Config) (*gorm.DB, error) {
	dialector, err := Dialector(conn)
	if err != nil {
		return nil, err
	}

	if gc == nil {
		gc = DefaultGormConfig().GormConfig
	}
	db, err := gorm.Open(dialector, gc)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the %s database: %w", conn.Name, err)
	}
	return db, nil
}

// GetDriver returns the dialect name of db ("mysql", "postgres" or "sqlite").
func GetDriver(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return ""
	}
	return supports.MapPostgres(db.Dialector.Name())
}
