package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes and removes keys in the config files.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename of the local config in the git root.
	LocalConfigName string

	// ValidGlobalKeys and ValidLocalKeys restrict which keys may be
	// written. Nil allows every key.
	ValidGlobalKeys []string
	ValidLocalKeys  []string
}

// DefaultSaveConfig returns the save configuration used by the buildnotify
// command.
func DefaultSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: AppName,
		LocalConfigName: LocalConfigName,
		ValidGlobalKeys: Keys,
		ValidLocalKeys:  LocalKeys,
	}
}

func (c SaveConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// GlobalPath returns the global config file path.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", fmt.Errorf("global config directory not configured")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile()), nil
}

// LocalPath returns the local config file path under gitRoot.
func (c SaveConfig) LocalPath(gitRoot string) (string, error) {
	if gitRoot == "" {
		return "", fmt.Errorf("git root not found")
	}
	if c.LocalConfigName == "" {
		return "", fmt.Errorf("local config name not configured")
	}
	return filepath.Join(gitRoot, c.LocalConfigName), nil
}

// SaveGlobal saves a key-value pair to the global config file. The file is
// private to the user since it may hold tokens.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if err := validateKey("global", c.ValidGlobalKeys, key); err != nil {
		return err
	}
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return updateFile(path, 0o600, func(m map[string]any) {
		m[key] = parseValue(value)
	})
}

// SaveLocal saves a key-value pair to the local config file in gitRoot.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	if err := validateKey("local", c.ValidLocalKeys, key); err != nil {
		return err
	}
	path, err := c.LocalPath(gitRoot)
	if err != nil {
		return err
	}
	// Local config is shared with the repository and should be readable.
	return updateFile(path, 0o644, func(m map[string]any) {
		m[key] = parseValue(value)
	})
}

// DeleteGlobalKey removes a key from the global config. A missing file or
// key is not an error.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	return deleteKey(path, 0o600, key)
}

// DeleteLocalKey removes a key from the local config in gitRoot.
func (c SaveConfig) DeleteLocalKey(gitRoot, key string) error {
	path, err := c.LocalPath(gitRoot)
	if err != nil {
		return err
	}
	return deleteKey(path, 0o644, key)
}

func validateKey(scope string, valid []string, key string) error {
	if len(valid) > 0 && !contains(valid, key) {
		return fmt.Errorf("unknown %s config key: %s\n\nValid keys: %s",
			scope, key, strings.Join(valid, ", "))
	}
	return nil
}

func deleteKey(path string, perm os.FileMode, key string) error {
	if _, err := os.Stat(path); err != nil {
		return nil // nothing to delete
	}
	return updateFile(path, perm, func(m map[string]any) {
		delete(m, key)
	})
}

// updateFile loads the YAML map at path (empty if missing), applies mutate
// and writes it back.
func updateFile(path string, perm os.FileMode, mutate func(map[string]any)) error {
	existing := make(map[string]any)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if existing == nil {
			existing = make(map[string]any)
		}
	}

	mutate(existing)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// parseValue stores booleans as YAML booleans and everything else verbatim.
func parseValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
