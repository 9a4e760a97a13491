package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"textpanel/color"
	"textpanel/log"
	"textpanel/panel"
)

const (
	ConfigFileName = "config.json"

	defaultWidth           = 70
	defaultLoadingInterval = 100
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".textpanel"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultWidth is the panel width used when no --width flag is given.
	DefaultWidth int `json:"default_width"`
	// DefaultColor colors every rendered line. Empty means uncolored.
	DefaultColor string `json:"default_color"`
	// BorderColor colors the walls. Empty means plain glyphs.
	BorderColor string `json:"border_color"`
	// ViewsDir is where saved views are kept.
	ViewsDir string `json:"views_dir"`
	// LoadingIntervalMs is the delay between loading bar frames.
	LoadingIntervalMs int `json:"loading_interval_ms"`
	// ScrollLines is how many blank lines precede a deployed view.
	// Zero derives it from the terminal height.
	ScrollLines int `json:"scroll_lines"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	viewsDir := "views"
	if dir, err := GetConfigDir(); err == nil {
		viewsDir = filepath.Join(dir, "views")
	} else {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
	}

	return &Config{
		DefaultWidth:      defaultWidth,
		ViewsDir:          viewsDir,
		LoadingIntervalMs: defaultLoadingInterval,
	}
}

// LoadingInterval returns the loading bar frame delay.
func (c *Config) LoadingInterval() time.Duration {
	return time.Duration(c.LoadingIntervalMs) * time.Millisecond
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if err := panel.ValidateWidth(c.DefaultWidth); err != nil {
		return fmt.Errorf("default_width: %w", err)
	}
	for key, name := range map[string]string{"default_color": c.DefaultColor, "border_color": c.BorderColor} {
		if name != "" && !color.Valid(name) {
			return fmt.Errorf("%s: %w: %q", key, color.ErrUnknownColor, name)
		}
	}
	if c.LoadingIntervalMs < 0 {
		return fmt.Errorf("loading_interval_ms: must not be negative, got %d", c.LoadingIntervalMs)
	}
	if c.ScrollLines < 0 {
		return fmt.Errorf("scroll_lines: must not be negative, got %d", c.ScrollLines)
	}
	return nil
}

// fillDefaults replaces zero values left by an older or partial file.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.DefaultWidth == 0 {
		c.DefaultWidth = d.DefaultWidth
	}
	if c.ViewsDir == "" {
		c.ViewsDir = d.ViewsDir
	}
	if c.LoadingIntervalMs == 0 {
		c.LoadingIntervalMs = d.LoadingIntervalMs
	}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	config.fillDefaults()
	if err := config.Validate(); err != nil {
		log.WarningLog.Printf("ignoring invalid config at %s: %v", configPath, err)
		return DefaultConfig()
	}
	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig validates config and writes it to the config directory.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	return saveConfig(config)
}
