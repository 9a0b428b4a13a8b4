package supports

import "strings"

// MapPostgres normalises the aliases people use for PostgreSQL.
func MapPostgres(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "pgsql", "postgresql", "postgres":
		return "postgres"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}
