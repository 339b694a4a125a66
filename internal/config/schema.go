package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeDuration
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Key name (e.g., "scan_rows")
	Type        ConfigValueType // Expected value type for validation
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"readme_path": {
		Path:        "readme_path",
		Type:        TypeString,
		Description: "README file holding the tested-versions block",
		Default:     "README.md",
	},
	"changelog_path": {
		Path:        "changelog_path",
		Type:        TypeString,
		Description: "CHANGELOG file holding the per-platform status table",
		Default:     "CHANGELOG.md",
	},
	"log_path": {
		Path:        "log_path",
		Type:        TypeString,
		Description: "Combined test output scanned for failure and ignore markers",
		Default:     "combined_test_output.log",
	},
	"scan_rows": {
		Path:        "scan_rows",
		Type:        TypeInt,
		Description: "Number of table rows searched for an existing version (1-100)",
		Default:     15,
	},
	"use_repo_root": {
		Path:        "use_repo_root",
		Type:        TypeBool,
		Description: "Resolve relative paths against the git repository root",
		Default:     false,
	},
	"watch_debounce": {
		Path:        "watch_debounce",
		Type:        TypeDuration,
		Description: "Quiet period after a log write before 'docsync watch' updates",
		Default:     (500 * time.Millisecond).String(),
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateValue checks a raw string value against the schema for a given key.
func ValidateValue(key, value string) error {
	schema, err := GetKeySchema(key)
	if err != nil {
		return err
	}
	switch schema.Type {
	case TypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid boolean: %q (expected true or false)", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("invalid integer: %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration: %q (examples: 500ms, 2s)", value)
		}
	}
	return nil
}

// validateEnvironment rejects DOCSYNC_* variables whose values cannot be
// decoded into their key's type. Unknown keys are ignored.
func validateEnvironment() error {
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := envTransform(name)
		if _, known := KnownKeys[key]; !known {
			continue
		}
		if err := ValidateValue(key, value); err != nil {
			return &ValidationError{FilePath: name, Field: key, Message: err.Error()}
		}
	}
	return nil
}
