package database

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/galaplate/petitions/logger"
	"gorm.io/gorm"
)

const migrationsTable = "migrations"

// Migrator handles running migrations
type Migrator struct {
	db       *gorm.DB
	schema   *Schema
	registry *MigrationRegistry
	out      io.Writer
}

// MigrationStatus reports whether a registered migration has run.
type MigrationStatus struct {
	Name  string
	Ran   bool
	Batch int
}

// NewMigrator creates a migrator on the global connection and registry
func NewMigrator() *Migrator {
	return NewMigratorFor(Connect, DefaultRegistry)
}

// NewMigratorFor creates a migrator on db for the given registry.
func NewMigratorFor(db *gorm.DB, registry *MigrationRegistry) *Migrator {
	return &Migrator{
		db:       db,
		schema:   NewSchemaFor(db),
		registry: registry,
		out:      os.Stdout,
	}
}

// SetOutput redirects progress messages.
func (m *Migrator) SetOutput(w io.Writer) {
	m.out = w
}

func (m *Migrator) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Migrator) setForeignKeyChecks(enabled bool) error {
	switch GetDriver(m.db) {
	case "mysql":
		if enabled {
			return m.db.Exec("SET FOREIGN_KEY_CHECKS=1;").Error
		}
		return m.db.Exec("SET FOREIGN_KEY_CHECKS=0;").Error
	case "sqlite":
		if enabled {
			return m.db.Exec("PRAGMA foreign_keys = ON;").Error
		}
		return m.db.Exec("PRAGMA foreign_keys = OFF;").Error
	default:
		// postgres needs superuser rights for session_replication_role
		return nil
	}
}

// withoutForeignKeys runs fn with foreign key checks disabled.
func (m *Migrator) withoutForeignKeys(fn func() error) error {
	if err := m.setForeignKeyChecks(false); err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}

	defer func() {
		if err := m.setForeignKeyChecks(true); err != nil {
			logger.Warn("failed to re-enable foreign key checks", map[string]any{"error": err.Error()})
		}
	}()

	return fn()
}

// CreateMigrationsTable creates the migrations table if it doesn't exist
func (m *Migrator) CreateMigrationsTable() error {
	if m.schema.HasTable(migrationsTable) {
		return nil
	}

	return m.schema.Create(migrationsTable, func(table *Blueprint) {
		table.ID()
		table.String("migration", 255).NotNullable()
		table.Integer("batch").NotNullable()
		table.Timestamp("created_at").NotNullable().Default("CURRENT_TIMESTAMP")
	})
}

func (m *Migrator) ranMigrations() ([]MigrationInfo, error) {
	if err := m.CreateMigrationsTable(); err != nil {
		return nil, err
	}

	var migrations []MigrationInfo
	err := m.db.Table(migrationsTable).Order("batch ASC, migration ASC").Find(&migrations).Error
	return migrations, err
}

// GetRanMigrations returns migrations that have been run
func (m *Migrator) GetRanMigrations() ([]string, error) {
	migrations, err := m.ranMigrations()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		names = append(names, migration.Migration)
	}
	return names, nil
}

// GetPendingMigrations returns migrations that haven't been run, oldest first
func (m *Migrator) GetPendingMigrations() ([]Migration, error) {
	ran, err := m.GetRanMigrations()
	if err != nil {
		return nil, err
	}

	ranMap := make(map[string]bool, len(ran))
	for _, name := range ran {
		ranMap[name] = true
	}

	var pending []Migration
	for _, migration := range m.registry.GetMigrations() {
		if !ranMap[migration.GetName()] {
			pending = append(pending, migration)
		}
	}

	return pending, nil
}

// GetLastBatch returns the last batch number
func (m *Migrator) GetLastBatch() (int, error) {
	if err := m.CreateMigrationsTable(); err != nil {
		return 0, err
	}

	var batch int
	err := m.db.Table(migrationsTable).Select("COALESCE(MAX(batch), 0) as batch").Scan(&batch).Error
	return batch, err
}

// GetMigrationsForRollback returns migrations from the last batch, newest first
func (m *Migrator) GetMigrationsForRollback() ([]Migration, error) {
	lastBatch, err := m.GetLastBatch()
	if err != nil {
		return nil, err
	}

	if lastBatch == 0 {
		return nil, nil
	}

	var migrationNames []string
	err = m.db.Table(migrationsTable).
		Where("batch = ?", lastBatch).
		Order("migration DESC").
		Pluck("migration", &migrationNames).Error
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, name := range migrationNames {
		if migration := m.registry.GetMigrationByName(name); migration != nil {
			migrations = append(migrations, migration)
		}
	}

	return migrations, nil
}

// Up runs all pending migrations as one new batch
func (m *Migrator) Up() error {
	pending, err := m.GetPendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to get pending migrations: %w", err)
	}

	if len(pending) == 0 {
		m.printf("Nothing to migrate\n")
		return nil
	}

	lastBatch, err := m.GetLastBatch()
	if err != nil {
		return fmt.Errorf("failed to get last batch: %w", err)
	}

	newBatch := lastBatch + 1

	for _, migration := range pending {
		m.printf("Migrating: %s", migration.GetFileName())

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(NewSchemaFor(tx)); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.GetName(), err)
			}

			record := MigrationInfo{
				Migration: migration.GetName(),
				Batch:     newBatch,
				CreatedAt: time.Now(),
			}
			if err := tx.Table(migrationsTable).Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.GetName(), err)
			}
			return nil
		})
		if err != nil {
			m.printf(" ❌\n")
			logger.Error("migration failed", map[string]any{"migration": migration.GetName(), "error": err.Error()})
			return err
		}

		m.printf(" DONE\n")
		logger.Info("migration ran", map[string]any{"migration": migration.GetName(), "batch": newBatch})
	}
	return nil
}

// Down rolls back the last batch of migrations
func (m *Migrator) Down() error {
	migrations, err := m.GetMigrationsForRollback()
	if err != nil {
		return fmt.Errorf("failed to get rollback migrations: %w", err)
	}

	if len(migrations) == 0 {
		m.printf("Nothing to rollback\n")
		return nil
	}

	for _, migration := range migrations {
		m.printf("Rolling back: %s", migration.GetFileName())

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(NewSchemaFor(tx)); err != nil {
				return fmt.Errorf("rollback of %s failed: %w", migration.GetName(), err)
			}
			if err := tx.Table(migrationsTable).Where("migration = ?", migration.GetName()).Delete(&MigrationInfo{}).Error; err != nil {
				return fmt.Errorf("failed to remove migration record %s: %w", migration.GetName(), err)
			}
			return nil
		})
		if err != nil {
			m.printf(" ❌\n")
			logger.Error("rollback failed", map[string]any{"migration": migration.GetName(), "error": err.Error()})
			return err
		}

		m.printf(" DONE\n")
		logger.Info("migration rolled back", map[string]any{"migration": migration.GetName()})
	}
	return nil
}

// StatusRows lists every registered migration with its run state.
func (m *Migrator) StatusRows() ([]MigrationStatus, error) {
	ran, err := m.ranMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to get ran migrations: %w", err)
	}

	batches := make(map[string]int, len(ran))
	for _, info := range ran {
		batches[info.Migration] = info.Batch
	}

	var rows []MigrationStatus
	for _, migration := range m.registry.GetMigrations() {
		batch, ok := batches[migration.GetName()]
		rows = append(rows, MigrationStatus{Name: migration.GetName(), Ran: ok, Batch: batch})
	}
	return rows, nil
}

// Status prints the migration status table
func (m *Migrator) Status() error {
	rows, err := m.StatusRows()
	if err != nil {
		return err
	}

	m.printf("%-50s %s\n", "Migration", "Status")
	m.printf("%-50s %s\n", strings.Repeat("-", 50), strings.Repeat("-", 10))

	ranCount := 0
	for _, row := range rows {
		status := "Pending"
		if row.Ran {
			status = fmt.Sprintf("Ran (batch %d)", row.Batch)
			ranCount++
		}
		m.printf("%-50s %s\n", row.Name, status)
	}

	m.printf("\nTotal migrations: %d\n", len(rows))
	m.printf("Ran: %d\n", ranCount)
	m.printf("Pending: %d\n", len(rows)-ranCount)

	return nil
}

// Reset rolls back all migrations
func (m *Migrator) Reset() error {
	if err := m.CreateMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return m.withoutForeignKeys(m.resetMigrations)
}

func (m *Migrator) resetMigrations() error {
	for {
		migrations, err := m.GetMigrationsForRollback()
		if err != nil {
			return err
		}

		if len(migrations) == 0 {
			return nil
		}

		if err := m.Down(); err != nil {
			return err
		}
	}
}

// Refresh rolls back all migrations and runs them again
func (m *Migrator) Refresh() error {
	if err := m.CreateMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return m.withoutForeignKeys(func() error {
		if err := m.resetMigrations(); err != nil {
			return err
		}
		return m.Up()
	})
}
