package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{Dir: t.TempDir()}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	cfg := testConfig(t)

	s, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsEmptyFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), nil, 0600))

	s, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	want := Settings{
		APIPort:         9090,
		APIAuthToken:    "secret-token",
		DefaultTags:     "inbox,web",
		DefaultStatus:   "in-progress",
		DefaultPriority: "high",
		TimeoutSeconds:  30,
	}
	require.NoError(t, cfg.SaveSettings(want))

	got, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsPartialFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("api_port = 3000\n"), 0600))

	s, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 3000, s.APIPort)
	assert.Equal(t, "web", s.DefaultTags)
	assert.Equal(t, "open", s.DefaultStatus)
}

func TestLoadSettingsNormalizesBadValues(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("api_port = -1\ntimeout_seconds = 0\n"), 0600))

	s, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 8080, s.APIPort)
	assert.Equal(t, 10, s.TimeoutSeconds)
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("not = [valid toml"), 0600))

	_, err := cfg.LoadSettings()
	assert.Error(t, err)
}

func TestSaveSettingsCreatesDir(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "nested", "taskclip")}

	require.NoError(t, cfg.SaveSettings(DefaultSettings()))

	info, err := os.Stat(cfg.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDefaultConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}
