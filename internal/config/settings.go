package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultAPIPort        = 8080
	defaultTags           = "web"
	defaultStatus         = "open"
	defaultPriority       = "normal"
	defaultTimeoutSeconds = 10
)

// Settings is the persisted user configuration. It is loaded before every
// task-creation attempt and written only through an explicit Save.
type Settings struct {
	APIPort         int    `toml:"api_port"`
	APIAuthToken    string `toml:"api_auth_token"`
	DefaultTags     string `toml:"default_tags"`
	DefaultStatus   string `toml:"default_status"`
	DefaultPriority string `toml:"default_priority"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		APIPort:         defaultAPIPort,
		DefaultTags:     defaultTags,
		DefaultStatus:   defaultStatus,
		DefaultPriority: defaultPriority,
		TimeoutSeconds:  defaultTimeoutSeconds,
	}
}

// LoadSettings reads the settings file under the config directory.
// A missing or empty file yields the defaults.
func (c *Config) LoadSettings() (Settings, error) {
	s := DefaultSettings()
	if err := readTOML(c.SettingsPath(), &s); err != nil {
		return Settings{}, err
	}
	if s.APIPort <= 0 {
		s.APIPort = defaultAPIPort
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = defaultTimeoutSeconds
	}
	return s, nil
}

// SaveSettings writes the settings file. This is the only write path; the
// dispatch pipeline itself never mutates settings.
func (c *Config) SaveSettings(s Settings) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.SettingsPath(), data, 0600)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
