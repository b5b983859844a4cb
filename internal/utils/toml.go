package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes path into v.
func LoadTOMLFile(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Debugf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// SaveTOMLFile writes v to path through a temp file and rename,
// so readers never see a half written config.
func SaveTOMLFile(v any, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ParseTOMLWithRecovery decodes path into a generic map.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection returns the table named name.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractInt reads an integer key. TOML integers decode as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := data[key].(int64)
	return int(val), ok
}

// ExtractBool reads a boolean key.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}

// ExtractString reads a string key.
func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	return val, ok
}
