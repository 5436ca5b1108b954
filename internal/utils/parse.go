package utils

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DecodeTOMLFile decodes configPath into v. Keys v has no field for are
// ignored.
func DecodeTOMLFile(configPath string, v any) error {
	if _, err := toml.DecodeFile(configPath, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	return nil
}

// DecodeTOMLTables decodes configPath without a schema, for salvaging the
// sections of a file whose values do not match the typed config.
func DecodeTOMLTables(configPath string) (map[string]any, error) {
	tables := make(map[string]any)
	if _, err := toml.DecodeFile(configPath, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	return tables, nil
}

// TOMLTable returns the [name] table of a schemaless document.
func TOMLTable(doc map[string]any, name string) (map[string]any, bool) {
	table, ok := doc[name].(map[string]any)
	return table, ok
}

// TOMLInt reads an integer key; TOML integers decode as int64.
func TOMLInt(table map[string]any, key string) (int, bool) {
	v, ok := table[key].(int64)
	return int(v), ok
}

// TOMLString reads a string key.
func TOMLString(table map[string]any, key string) (string, bool) {
	v, ok := table[key].(string)
	return v, ok
}
