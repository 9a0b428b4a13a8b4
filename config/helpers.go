package config

// Config retrieves a configuration value using dot notation
// Example: config.Config("database.connections.mysql.host")
func Config(key string) any {
	return GetGlobal().Get(key)
}

// ConfigString retrieves a string configuration value
// Example: config.ConfigString("database.default")
func ConfigString(key string) string {
	return GetGlobal().GetString(key)
}

// ConfigStringOr returns the string value of key or fallback when it is empty.
func ConfigStringOr(key, fallback string) string {
	if value := ConfigString(key); value != "" {
		return value
	}
	return fallback
}

// ConfigInt retrieves an int configuration value
// Example: config.ConfigInt("logging.max_age_days")
func ConfigInt(key string) int {
	return GetGlobal().GetInt(key)
}

// ConfigBool retrieves a bool configuration value
// Example: config.ConfigBool("app.debug")
func ConfigBool(key string) bool {
	return GetGlobal().GetBool(key)
}
