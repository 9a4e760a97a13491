package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textpanel/color"
	"textpanel/panel"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultConfig(t *testing.T) {
	home := setHome(t)

	cfg := DefaultConfig()
	assert.Equal(t, 70, cfg.DefaultWidth)
	assert.Equal(t, "", cfg.DefaultColor)
	assert.Equal(t, "", cfg.BorderColor)
	assert.Equal(t, filepath.Join(home, ".textpanel", "views"), cfg.ViewsDir)
	assert.Equal(t, 100*time.Millisecond, cfg.LoadingInterval())
	assert.Equal(t, 0, cfg.ScrollLines)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	home := setHome(t)

	cfg := LoadConfig()
	assert.Equal(t, 70, cfg.DefaultWidth)

	_, err := os.Stat(filepath.Join(home, ".textpanel", ConfigFileName))
	assert.NoError(t, err, "missing config is written with defaults")
}

func TestSaveAndLoadConfig(t *testing.T) {
	setHome(t)

	cfg := DefaultConfig()
	cfg.DefaultWidth = 40
	cfg.DefaultColor = "cyan"
	cfg.BorderColor = "MAGENTA"
	require.NoError(t, SaveConfig(cfg))

	loaded := LoadConfig()
	assert.Equal(t, 40, loaded.DefaultWidth)
	assert.Equal(t, "cyan", loaded.DefaultColor)
	assert.Equal(t, "MAGENTA", loaded.BorderColor)
}

func TestLoadConfigFillsMissingFields(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".textpanel")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"border_color": "RED"}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, "RED", cfg.BorderColor)
	assert.Equal(t, 70, cfg.DefaultWidth)
	assert.Equal(t, 100, cfg.LoadingIntervalMs)
	assert.NotEmpty(t, cfg.ViewsDir)
}

func TestLoadConfigCorruptFile(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".textpanel")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{broken"), 0644))

	cfg := LoadConfig()
	assert.Equal(t, 70, cfg.DefaultWidth)

	backups, err := filepath.Glob(filepath.Join(dir, ConfigFileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".textpanel")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"default_width": 500}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, 70, cfg.DefaultWidth, "invalid files fall back to defaults")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		target error
	}{
		{name: "width too small", modify: func(c *Config) { c.DefaultWidth = 1 }, target: panel.ErrWidth},
		{name: "width too large", modify: func(c *Config) { c.DefaultWidth = 201 }, target: panel.ErrWidth},
		{name: "unknown default color", modify: func(c *Config) { c.DefaultColor = "MAUVE" }, target: color.ErrUnknownColor},
		{name: "unknown border color", modify: func(c *Config) { c.BorderColor = "MAUVE" }, target: color.ErrUnknownColor},
		{name: "negative interval", modify: func(c *Config) { c.LoadingIntervalMs = -1 }},
		{name: "negative scroll", modify: func(c *Config) { c.ScrollLines = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHome(t)
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Error(t, SaveConfig(cfg))
		})
	}
}
