package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerSetAndGet(t *testing.T) {
	m := NewManager()
	m.Set("database.connections.sqlite.database", "test.sqlite")
	m.Set("database.default", "sqlite")

	assert.Equal(t, "sqlite", m.GetString("database.default"))
	assert.Equal(t, "test.sqlite", m.GetString("database.connections.sqlite.database"))
	assert.Nil(t, m.Get("database.connections.mysql.host"))
	assert.Nil(t, m.Get(""))
	assert.True(t, m.Has("database.connections"))
}

func TestManagerSetOverwritesScalarWithMap(t *testing.T) {
	m := NewManager()
	m.Set("app", "petitions")
	m.Set("app.env", "testing")

	assert.Equal(t, "testing", m.GetString("app.env"))
}

func TestManagerTypedGetters(t *testing.T) {
	m := NewManager()
	m.Load(map[string]any{
		"logging": map[string]any{
			"max_age_days": 7,
			"as_string":    "14",
			"as_float":     3.0,
			"broken":       "seven",
		},
		"app": map[string]any{
			"debug":     true,
			"debug_str": "true",
		},
	})

	assert.Equal(t, 7, m.GetInt("logging.max_age_days"))
	assert.Equal(t, 14, m.GetInt("logging.as_string"))
	assert.Equal(t, 3, m.GetInt("logging.as_float"))
	assert.Equal(t, 0, m.GetInt("logging.broken"))
	assert.Equal(t, "7", m.GetString("logging.max_age_days"))
	assert.True(t, m.GetBool("app.debug"))
	assert.True(t, m.GetBool("app.debug_str"))
	assert.False(t, m.GetBool("app.missing"))
}

func TestManagerSetDefault(t *testing.T) {
	m := NewManager()
	m.Set("database.default", "postgres")
	m.Set("logging.level", "")

	ApplyDefaults(m)

	assert.Equal(t, "postgres", m.GetString("database.default"))
	assert.Equal(t, "info", m.GetString("logging.level"))
	assert.Equal(t, "db/database.sqlite", m.GetString("database.connections.sqlite.database"))
}
