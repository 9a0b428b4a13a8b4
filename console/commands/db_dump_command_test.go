package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/galaplate/petitions/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpFileName(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		database string
		args     []string
		want     string
	}{
		{"default name", "db/database.sqlite", nil, filepath.Join("db", "dumps", "database_20250601_123045.sql")},
		{"plain name", "petitions", []string{"backup"}, filepath.Join("db", "dumps", "backup.sql")},
		{"keeps extension", "petitions", []string{"backup.sql"}, filepath.Join("db", "dumps", "backup.sql")},
		{"relative path", "petitions", []string{filepath.Join("tmp", "backup")}, filepath.Join("tmp", "backup.sql")},
		{"absolute path", "petitions", []string{"/var/backups/petitions.sql"}, "/var/backups/petitions.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dumpFileName(tt.database, tt.args, now))
		})
	}
}

func TestDumpCommand(t *testing.T) {
	ctx := context.Background()

	cmd, err := dumpCommand(ctx, database.ConnectionConfig{Driver: "sqlite", Database: "db/database.sqlite"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlite3", "db/database.sqlite", ".dump"}, cmd.Args)

	conn := database.ConnectionConfig{
		Host:     "127.0.0.1",
		Port:     "3306",
		Username: "root",
		Password: "secret",
		Database: "petitions",
	}

	conn.Driver = "mysql"
	cmd, err = dumpCommand(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, "mysqldump", cmd.Args[0])
	assert.Contains(t, cmd.Args, "--host=127.0.0.1")
	assert.NotContains(t, cmd.Args, "secret")
	assert.Contains(t, cmd.Env, "MYSQL_PWD=secret")

	conn.Driver = "postgres"
	cmd, err = dumpCommand(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, "pg_dump", cmd.Args[0])
	assert.Equal(t, "petitions", cmd.Args[len(cmd.Args)-1])
	assert.Contains(t, cmd.Env, "PGPASSWORD=secret")

	_, err = dumpCommand(ctx, database.ConnectionConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver: oracle")
}
