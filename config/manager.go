package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Manager manages application configuration
type Manager struct {
	config map[string]any
	mu     sync.RWMutex
}

// NewManager creates a new config manager
func NewManager() *Manager {
	return &Manager{
		config: make(map[string]any),
	}
}

// Load replaces the configuration with a nested map
func (m *Manager) Load(data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data == nil {
		data = make(map[string]any)
	}
	m.config = data
}

// Set sets a configuration value using dot notation
// Example: Set("database.default", "sqlite")
func (m *Manager) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setNested(m.config, key, value)
}

// SetDefault sets key only when it has no value yet.
func (m *Manager) SetDefault(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current := m.getNested(m.config, key); current != nil && current != "" {
		return
	}
	m.setNested(m.config, key, value)
}

// Get retrieves a configuration value using dot notation
// Example: Get("database.connections.mysql.host")
// Returns nil if key doesn't exist
func (m *Manager) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getNested(m.config, key)
}

// GetString retrieves a string configuration value
func (m *Manager) GetString(key string) string {
	value := m.Get(key)
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}

// GetInt retrieves an int configuration value
func (m *Manager) GetInt(key string) int {
	switch v := m.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// GetBool retrieves a bool configuration value
func (m *Manager) GetBool(key string) bool {
	switch v := m.Get(key).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}
	return false
}

// GetAll returns all configuration
func (m *Manager) GetAll() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Has checks if a configuration key exists
func (m *Manager) Has(key string) bool {
	return m.Get(key) != nil
}

func (m *Manager) getNested(data map[string]any, key string) any {
	if key == "" {
		return nil
	}

	var current any = data
	for _, part := range strings.Split(key, ".") {
		c, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = c[part]; !ok {
			return nil
		}
	}

	return current
}

func (m *Manager) setNested(data map[string]any, key string, value any) {
	if key == "" {
		return
	}

	parts := strings.Split(key, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

var (
	globalConfigManager *Manager
	globalMu            sync.Mutex
)

// InitializeGlobal replaces the global config manager's data.
func InitializeGlobal(data map[string]any) {
	GetGlobal().Load(data)
}

// GetGlobal returns the global config manager
func GetGlobal() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfigManager == nil {
		globalConfigManager = NewManager()
	}
	return globalConfigManager
}
