package config

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// SettingsFile is the runtime settings file name inside the config dir
const SettingsFile = "settings.json"

// Settings are the runtime options that are not gameplay tuning
type Settings struct {
	LogLevel         string
	LogFormat        string
	Range            string
	Framerate        int
	TelemetryEnabled bool
	Record           string
}

func setSettingsDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("range", "demo")
	viper.SetDefault("framerate", 60)
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("record", "")
}

// LoadSettings reads settings.json from configDir and sets default values
func LoadSettings(configDir string) (*Settings, error) {
	setSettingsDefaults()

	viper.SetConfigName(SettingsFile)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}
	return settingsFromViper()
}

// LoadSettingsFS reads settings.json from the root of fsys
func LoadSettingsFS(fsys fs.FS) (*Settings, error) {
	setSettingsDefaults()

	data, err := fs.ReadFile(fsys, SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	viper.SetConfigType("json")
	if err := viper.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}
	return settingsFromViper()
}

func settingsFromViper() (*Settings, error) {
	s := &Settings{
		LogLevel:         viper.GetString("logLevel"),
		LogFormat:        viper.GetString("logFormat"),
		Range:            viper.GetString("range"),
		Framerate:        viper.GetInt("framerate"),
		TelemetryEnabled: viper.GetBool("telemetry.enabled"),
		Record:           viper.GetString("record"),
	}
	if s.Framerate <= 0 {
		return nil, invalid("framerate must be positive, got %d", s.Framerate)
	}
	return s, nil
}
