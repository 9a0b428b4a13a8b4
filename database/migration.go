package database

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Migration interface
type Migration interface {
	Up(schema *Schema) error
	Down(schema *Schema) error
	GetName() string
	GetTimestamp() int64
	GetFileName() string
}

// BaseMigration provides default implementation
type BaseMigration struct {
	Name      string
	Timestamp int64
}

func (m *BaseMigration) GetName() string {
	return m.Name
}

func (m *BaseMigration) GetTimestamp() int64 {
	return m.Timestamp
}

func (m *BaseMigration) GetFileName() string {
	return fmt.Sprintf("%d_%s", m.Timestamp, m.Name)
}

// MigrationInfo is a row of the migrations table
type MigrationInfo struct {
	ID        int64     `json:"id"`
	Migration string    `json:"migration"`
	Batch     int       `json:"batch"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrationRegistry holds all registered migrations
type MigrationRegistry struct {
	migrations []Migration
}

var DefaultRegistry = &MigrationRegistry{}

// NewMigrationRegistry returns an empty registry.
func NewMigrationRegistry(migrations ...Migration) *MigrationRegistry {
	r := &MigrationRegistry{}
	for _, m := range migrations {
		r.Register(m)
	}
	return r
}

// Register adds a migration to the registry
func (r *MigrationRegistry) Register(migration Migration) {
	r.migrations = append(r.migrations, migration)
}

// GetMigrations returns all registered migrations sorted by timestamp
func (r *MigrationRegistry) GetMigrations() []Migration {
	sorted := make([]Migration, len(r.migrations))
	copy(sorted, r.migrations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetTimestamp() < sorted[j].GetTimestamp()
	})
	return sorted
}

// GetMigrationByName finds a migration by name
func (r *MigrationRegistry) GetMigrationByName(name string) Migration {
	for _, migration := range r.migrations {
		if migration.GetName() == name {
			return migration
		}
	}
	return nil
}

// Register is a helper function to register migrations
func Register(migration Migration) {
	DefaultRegistry.Register(migration)
}

// CreateMigrationTemplate generates the Go source of a new migration.
func CreateMigrationTemplate(moduleName, name string, timestamp int64) string {
	table := ExtractTableName(name)

	return fmt.Sprintf(`package migrations

import (
	"%[1]s/database"
)

type Migration%[2]d struct {
	database.BaseMigration
}

func init() {
	database.Register(&Migration%[2]d{
		BaseMigration: database.BaseMigration{
			Name:      "%[3]s",
			Timestamp: %[2]d,
		},
	})
}

func (m *Migration%[2]d) Up(schema *database.Schema) error {
	return schema.Create("%[4]s", func(table *database.Blueprint) {
		table.ID()
		table.Timestamps()
	})
}

func (m *Migration%[2]d) Down(schema *database.Schema) error {
	return schema.DropIfExists("%[4]s")
}
`, moduleName, timestamp, name, table)
}

// ExtractTableName derives the table from a migration name:
// "create_users_table" -> "users".
func ExtractTableName(name string) string {
	tableName, ok := strings.CutPrefix(name, "create_")
	if !ok || tableName == "" {
		return "example_table"
	}
	if trimmed := strings.TrimSuffix(tableName, "_table"); trimmed != "" {
		return trimmed
	}
	return tableName
}
