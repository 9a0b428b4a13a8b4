package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/galaplate/petitions/env"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration files from a directory
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load reads every *.yaml / *.yml file in the config directory. Each file
// becomes a top-level key named after the file, so database.yaml is reachable
// as "database.*".
func (l *Loader) Load() (map[string]any, error) {
	config := make(map[string]any)

	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return config, fmt.Errorf("config directory does not exist: %s", l.configPath)
	}

	files, err := os.ReadDir(l.configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := filepath.Ext(file.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		filename := filepath.Join(l.configPath, file.Name())
		fileConfig, err := l.loadFile(filename)
		if err != nil {
			return config, fmt.Errorf("failed to load config file %s: %w", filename, err)
		}

		config[strings.TrimSuffix(file.Name(), ext)] = fileConfig
	}

	return config, nil
}

func (l *Loader) loadFile(filename string) (any, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var data any
	if err := yaml.Unmarshal([]byte(l.processEnvVariables(string(content))), &data); err != nil {
		return nil, err
	}

	return l.convertToProperTypes(data), nil
}

// processEnvVariables replaces ${VAR_NAME} or ${VAR_NAME:default} with env values
func (l *Loader) processEnvVariables(content string) string {
	result := content
	start := 0

	for {
		idx := strings.Index(result[start:], "${")
		if idx == -1 {
			break
		}
		idx += start

		endIdx := strings.Index(result[idx:], "}")
		if endIdx == -1 {
			break
		}
		endIdx += idx

		varName, defaultValue, _ := strings.Cut(result[idx+2:endIdx], ":")

		value := env.Get(varName)
		if value == "" {
			value = defaultValue
		}

		result = result[:idx] + value + result[endIdx+1:]
		start = idx + len(value)
	}

	return result
}

// convertToProperTypes normalises every mapping to map[string]any so that
// Manager can walk it with dot notation.
func (l *Loader) convertToProperTypes(data any) any {
	switch v := data.(type) {
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[fmt.Sprintf("%v", key)] = l.convertToProperTypes(val)
		}
		return result
	case map[string]any:
		for key, val := range v {
			v[key] = l.convertToProperTypes(val)
		}
		return v
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = l.convertToProperTypes(val)
		}
		return result
	default:
		return v
	}
}
