package database

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type tableMigration struct {
	BaseMigration
	table   string
	failUp  bool
	upCalls int
}

func (m *tableMigration) Up(schema *Schema) error {
	m.upCalls++
	err := schema.Create(m.table, func(table *Blueprint) {
		table.ID()
		table.String("name").NotNullable()
		table.Timestamps()
	})
	if err != nil {
		return err
	}
	if m.failUp {
		return errors.New("boom")
	}
	return nil
}

func (m *tableMigration) Down(schema *Schema) error {
	return schema.DropIfExists(m.table)
}

func newTableMigration(name, table string, ts int64) *tableMigration {
	return &tableMigration{BaseMigration: BaseMigration{Name: name, Timestamp: ts}, table: table}
}

func newTestMigrator(t *testing.T, migrations ...Migration) (*Migrator, *gorm.DB, *bytes.Buffer) {
	db := openTestDB(t)
	m := NewMigratorFor(db, NewMigrationRegistry(migrations...))
	out := &bytes.Buffer{}
	m.SetOutput(out)
	return m, db, out
}

func TestMigratorUpRunsPendingInTimestampOrder(t *testing.T) {
	second := newTableMigration("create_signatures_table", "signatures", 200)
	first := newTableMigration("create_petitions_table", "petitions", 100)
	m, db, out := newTestMigrator(t, second, first)

	require.NoError(t, m.Up())

	assert.True(t, db.Migrator().HasTable("petitions"))
	assert.True(t, db.Migrator().HasTable("signatures"))

	ran, err := m.GetRanMigrations()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"create_petitions_table", "create_signatures_table"}, ran)
	assert.Regexp(t, `(?s)100_create_petitions_table DONE.*200_create_signatures_table DONE`, out.String())

	batch, err := m.GetLastBatch()
	require.NoError(t, err)
	assert.Equal(t, 1, batch)

	require.NoError(t, m.Up())
	assert.Contains(t, out.String(), "Nothing to migrate")
	assert.Equal(t, 1, first.upCalls)
}

func TestMigratorDownRollsBackLastBatchOnly(t *testing.T) {
	petitions := newTableMigration("create_petitions_table", "petitions", 100)
	registry := NewMigrationRegistry(petitions)
	db := openTestDB(t)
	m := NewMigratorFor(db, registry)
	m.SetOutput(&bytes.Buffer{})
	require.NoError(t, m.Up())

	registry.Register(newTableMigration("create_signatures_table", "signatures", 200))
	require.NoError(t, m.Up())

	batch, err := m.GetLastBatch()
	require.NoError(t, err)
	assert.Equal(t, 2, batch)

	require.NoError(t, m.Down())

	assert.True(t, db.Migrator().HasTable("petitions"))
	assert.False(t, db.Migrator().HasTable("signatures"))

	pending, err := m.GetPendingMigrations()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "create_signatures_table", pending[0].GetName())
}

func TestMigratorFailedMigrationIsNotRecorded(t *testing.T) {
	broken := newTableMigration("create_broken_table", "broken", 100)
	broken.failUp = true
	m, db, out := newTestMigrator(t, broken)

	err := m.Up()
	require.Error(t, err)
	assert.ErrorContains(t, err, "create_broken_table")
	assert.Contains(t, out.String(), "❌")

	ran, err := m.GetRanMigrations()
	require.NoError(t, err)
	assert.Empty(t, ran)
	assert.False(t, db.Migrator().HasTable("broken"))
}

func TestMigratorResetAndRefresh(t *testing.T) {
	m, db, _ := newTestMigrator(t,
		newTableMigration("create_petitions_table", "petitions", 100),
		newTableMigration("create_signatures_table", "signatures", 200),
	)
	require.NoError(t, m.Up())
	require.NoError(t, db.Exec("INSERT INTO petitions (name) VALUES ('keep me?')").Error)

	require.NoError(t, m.Refresh())

	var count int64
	require.NoError(t, db.Table("petitions").Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, m.Reset())
	assert.False(t, db.Migrator().HasTable("petitions"))
	assert.False(t, db.Migrator().HasTable("signatures"))

	batch, err := m.GetLastBatch()
	require.NoError(t, err)
	assert.Zero(t, batch)
}

func TestMigratorStatus(t *testing.T) {
	petitions := newTableMigration("create_petitions_table", "petitions", 100)
	registry := NewMigrationRegistry(petitions)
	db := openTestDB(t)
	m := NewMigratorFor(db, registry)
	out := &bytes.Buffer{}
	m.SetOutput(out)
	require.NoError(t, m.Up())
	registry.Register(newTableMigration("create_signatures_table", "signatures", 200))

	rows, err := m.StatusRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, MigrationStatus{Name: "create_petitions_table", Ran: true, Batch: 1}, rows[0])
	assert.Equal(t, MigrationStatus{Name: "create_signatures_table"}, rows[1])

	require.NoError(t, m.Status())
	assert.Contains(t, out.String(), "Ran (batch 1)")
	assert.Contains(t, out.String(), "Pending: 1")
}

func TestSchemaHasTableAndColumn(t *testing.T) {
	db := openTestDB(t)
	schema := NewSchemaFor(db)

	require.NoError(t, schema.Create("petitions", func(table *Blueprint) {
		table.ID()
		table.String("title").NotNullable()
		table.Index([]string{"title"})
	}))

	assert.True(t, schema.HasTable("petitions"))
	assert.True(t, schema.HasColumn("petitions", "title"))
	assert.False(t, schema.HasColumn("petitions", "slug"))

	require.NoError(t, schema.Table("petitions", func(table *Blueprint) {
		table.String("slug")
	}))
	assert.True(t, schema.HasColumn("petitions", "slug"))
	assert.True(t, db.Migrator().HasIndex("petitions", "idx_petitions_title"))

	require.NoError(t, schema.Drop("petitions"))
	assert.False(t, schema.HasTable("petitions"))
	assert.NoError(t, schema.DropIfExists("petitions"))
}
