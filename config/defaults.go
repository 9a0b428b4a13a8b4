package config

// ApplyDefaults fills in the keys the toolkit needs to run without any YAML
// files present: a local SQLite database, info logging and the local disk.
func ApplyDefaults(m *Manager) {
	m.SetDefault("app.name", "petitions")
	m.SetDefault("app.env", "local")

	m.SetDefault("database.default", "sqlite")
	m.SetDefault("database.log_level", "warn")
	m.SetDefault("database.connections.sqlite.driver", "sqlite")
	m.SetDefault("database.connections.sqlite.database", "db/database.sqlite")
	m.SetDefault("database.connections.mysql.driver", "mysql")
	m.SetDefault("database.connections.postgres.driver", "postgres")

	m.SetDefault("logging.channel", "file")
	m.SetDefault("logging.level", "info")
	m.SetDefault("logging.path", "storage/logs")
	m.SetDefault("logging.max_age_days", 7)

	m.SetDefault("filesystems.default", "local")
	m.SetDefault("filesystems.disks.local.path", "storage/app")
}
