package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyline-mro/wpaudit/internal/app/config"
)

// RawSettings represents the structure of the setting.json file.
// Pointer fields distinguish "absent" from zero values so defaults
// only fill what the file left out.
type RawSettings struct {
	// Core settings
	Home        *string `json:"home"`
	RulesPath   *string `json:"rules_path"`
	DataDir     *string `json:"data_dir"`
	LogbookPath *string `json:"logbook_path"`

	// Remote store
	Bucket *string `json:"bucket"`
	Prefix *string `json:"prefix"`
	Region *string `json:"region"`

	// Execution
	Workers *int `json:"workers"`

	// Logging
	StderrLevel *string `json:"stderr_level"`
}

// LoadSettings loads configuration from setting.json under baseDir.
// Priority: setting.json > defaults
func LoadSettings(baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	jsonPath := filepath.Join(baseDir, "setting.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		configSource = "json"
		settingPath = jsonPath
	}

	applyDefaults(settings)

	return buildAppConfig(settings, configSource, settingPath), nil
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	if settings.Home == nil {
		v := ".wpaudit"
		settings.Home = &v
	}
	if settings.RulesPath == nil {
		v := "" // built-in rule set
		settings.RulesPath = &v
	}
	if settings.DataDir == nil {
		v := filepath.Join(*settings.Home, "var")
		settings.DataDir = &v
	}
	if settings.LogbookPath == nil {
		v := filepath.Join(*settings.DataDir, "logbook.db")
		settings.LogbookPath = &v
	}

	if settings.Bucket == nil {
		v := ""
		settings.Bucket = &v
	}
	if settings.Prefix == nil {
		v := ""
		settings.Prefix = &v
	}
	if settings.Region == nil {
		v := ""
		settings.Region = &v
	}

	if settings.Workers == nil {
		v := 0 // one worker per CPU
		settings.Workers = &v
	}

	if settings.StderrLevel == nil {
		v := "warn"
		settings.StderrLevel = &v
	}
}

// buildAppConfig converts RawSettings to AppConfig
func buildAppConfig(settings *RawSettings, configSource, settingPath string) *config.AppConfig {
	return config.NewAppConfig(
		*settings.Home,
		*settings.RulesPath,
		*settings.DataDir,
		*settings.LogbookPath,
		*settings.Bucket,
		*settings.Prefix,
		*settings.Region,
		*settings.Workers,
		*settings.StderrLevel,
		configSource,
		settingPath,
	)
}

// CreateDefaultSettings creates a default setting.json content
func CreateDefaultSettings() []byte {
	settings := &RawSettings{}
	applyDefaults(settings)

	data, _ := json.MarshalIndent(settings, "", "  ")
	return data
}
