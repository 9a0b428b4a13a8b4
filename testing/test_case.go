package testing

import (
	"io"
	"path/filepath"

	"github.com/galaplate/petitions/database"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type TestConfig struct {
	// Registry holds the migrations applied before each test.
	Registry   *database.MigrationRegistry
	GormConfig *gorm.Config
}

// TestCase is a suite whose tests each run against a fresh, fully migrated
// SQLite database. The database is installed as database.Connect for the
// duration of the test.
type TestCase struct {
	suite.Suite
	DB     *gorm.DB
	Config *TestConfig

	previous *gorm.DB
}

func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		Registry: database.DefaultRegistry,
		GormConfig: &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	}
}

func NewTestCase(opts ...func(*TestConfig)) *TestCase {
	cfg := DefaultTestConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &TestCase{Config: cfg}
}

func (tc *TestCase) SetupTest() {
	if tc.Config == nil {
		tc.Config = DefaultTestConfig()
	}
	tc.openDatabase()
	tc.migrate()
}

func (tc *TestCase) openDatabase() {
	path := filepath.Join(tc.T().TempDir(), "testing.sqlite")

	gormConfig := tc.Config.GormConfig
	if gormConfig == nil {
		gormConfig = DefaultTestConfig().GormConfig
	}

	db, err := database.Open(database.ConnectionConfig{Name: "testing", Driver: "sqlite", Database: path}, gormConfig)
	tc.Require().NoError(err, "failed to open test database")

	tc.previous = database.Connect
	tc.DB = db
	database.Connect = db
}

func (tc *TestCase) migrate() {
	registry := tc.Config.Registry
	if registry == nil {
		registry = database.DefaultRegistry
	}

	migrator := database.NewMigratorFor(tc.DB, registry)
	migrator.SetOutput(io.Discard)
	tc.Require().NoError(migrator.Up(), "failed to migrate test database")
}

// RefreshDatabase rolls back and re-runs every migration.
func (tc *TestCase) RefreshDatabase() error {
	migrator := database.NewMigratorFor(tc.DB, tc.Config.Registry)
	migrator.SetOutput(io.Discard)
	return migrator.Refresh()
}

func (tc *TestCase) TearDownTest() {
	if tc.DB != nil {
		if sqlDB, err := tc.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	database.Connect = tc.previous
	tc.DB = nil
}

func (tc *TestCase) GetDB() *gorm.DB {
	if tc.DB == nil {
		tc.DB = database.Connect
	}
	return tc.DB
}
