package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/galaplate/petitions/database"
	storage "github.com/galaplate/petitions/file-storage/factory"
	"github.com/galaplate/petitions/logger"
	"github.com/spf13/cobra"
)

const dumpsDir = "db/dumps"

type DbDumpCommand struct {
	BaseCommand
	Upload bool
	Disk   string
}

func (c *DbDumpCommand) GetSignature() string {
	return "db:dump"
}

func (c *DbDumpCommand) GetDescription() string {
	return "Dump database to SQL file"
}

func (c *DbDumpCommand) ConfigureFlags(cmd *cobra.Command) {
	cmd.Use = "db:dump [file]"
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().BoolVar(&c.Upload, "upload", false, "upload the dump to a storage disk")
	cmd.Flags().StringVar(&c.Disk, "disk", "", "storage disk for --upload (default: filesystems.default)")
}

func (c *DbDumpCommand) Execute(ctx context.Context, args []string) error {
	conn := database.ConnectionFromConfig("")
	if conn.Driver != "sqlite" && (conn.Host == "" || conn.Port == "" || conn.Database == "") {
		return fmt.Errorf("missing database configuration for connection %q", conn.Name)
	}
	if conn.Driver == "sqlite" && conn.Database == "" {
		conn.Database = "db/database.sqlite"
	}

	filename := dumpFileName(conn.Database, args, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create dumps directory: %w", err)
	}

	cmd, err := dumpCommand(ctx, conn)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(cmd.Args[0]); err != nil {
		c.printInstallHint(cmd.Args[0])
		return fmt.Errorf("%s is not installed", cmd.Args[0])
	}

	c.PrintInfo(fmt.Sprintf("Dumping database '%s' to %s...", conn.Database, filename))

	outFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}

	cmd.Stdout = outFile
	cmd.Stderr = os.Stderr
	err = cmd.Run()
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filename)
		return fmt.Errorf("database dump failed: %w", err)
	}

	c.PrintSuccess(fmt.Sprintf("Database dumped successfully to %s", filename))
	logger.Info("database dumped", map[string]any{"file": filename, "driver": conn.Driver})

	if c.Upload {
		return c.upload(ctx, filename)
	}
	return nil
}

func (c *DbDumpCommand) upload(ctx context.Context, filename string) error {
	disk, err := storage.Disk(ctx, c.Disk)
	if err != nil {
		return err
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	meta, err := disk.Put(ctx, "dumps/"+filepath.Base(filename), file, "application/sql")
	if err != nil {
		return fmt.Errorf("failed to upload dump: %w", err)
	}

	c.PrintSuccess(fmt.Sprintf("Uploaded to %s: %s", meta.StorageType, meta.FilePath))
	return nil
}

// dumpFileName picks the target file: the argument (below db/dumps unless
// absolute, .sql appended) or <database>_<timestamp>.sql.
func dumpFileName(database string, args []string, now time.Time) string {
	if len(args) > 0 && args[0] != "" {
		filename := args[0]
		if filepath.Ext(filename) != ".sql" {
			filename += ".sql"
		}
		if !filepath.IsAbs(filename) && !strings.Contains(filename, string(filepath.Separator)) {
			filename = filepath.Join(dumpsDir, filename)
		}
		return filename
	}

	base := strings.TrimSuffix(filepath.Base(database), filepath.Ext(database))
	return filepath.Join(dumpsDir, fmt.Sprintf("%s_%s.sql", base, now.Format("20060102_150405")))
}

// dumpCommand builds the dump tool invocation. Passwords go through the
// environment so they do not show up in the process list.
func dumpCommand(ctx context.Context, conn database.ConnectionConfig) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch conn.Driver {
	case "sqlite":
		cmd = exec.CommandContext(ctx, "sqlite3", conn.Database, ".dump")
	case "mysql":
		cmd = exec.CommandContext(ctx, "mysqldump",
			"--host="+conn.Host,
			"--port="+conn.Port,
			"--user="+conn.Username,
			"--single-transaction",
			"--routines",
			"--triggers",
			conn.Database,
		)
		cmd.Env = append(os.Environ(), "MYSQL_PWD="+conn.Password)
	case "postgres":
		cmd = exec.CommandContext(ctx, "pg_dump",
			"--host="+conn.Host,
			"--port="+conn.Port,
			"--username="+conn.Username,
			"--no-password",
			"--clean",
			"--no-acl",
			"--no-owner",
			conn.Database,
		)
		cmd.Env = append(os.Environ(), "PGPASSWORD="+conn.Password)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: sqlite, mysql, postgres)", conn.Driver)
	}
	return cmd, nil
}

func (c *DbDumpCommand) printInstallHint(command string) {
	c.PrintError(fmt.Sprintf("%s command not found", command))
	switch command {
	case "sqlite3":
		c.PrintInfo("Install SQLite3 command-line tool:")
		c.PrintInfo("  macOS: brew install sqlite3")
		c.PrintInfo("  Ubuntu/Debian: sudo apt-get install sqlite3")
	case "mysqldump":
		c.PrintInfo("Install MySQL client tools to use mysqldump")
	case "pg_dump":
		c.PrintInfo("Install PostgreSQL client tools to use pg_dump")
	}
}
