package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SettingsFileName is looked up in the working directory and ~/.config/fincalc
const SettingsFileName = "fincalc"

// Settings are CLI defaults read from fincalc.yaml and FINCALC_* variables
type Settings struct {
	Format        string `mapstructure:"format"`
	LogLevel      string `mapstructure:"log_level"`
	MaxPeriods    int    `mapstructure:"max_periods"`
	SchedulesFile string `mapstructure:"schedules_file"`
	Workers       int    `mapstructure:"workers"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Format:     "console",
		LogLevel:   "info",
		MaxPeriods: 1200,
	}
}

// LoadSettings reads settings from path, or from the default locations when
// path is empty. A missing default file is not an error; a missing explicit
// one is.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("format", defaults.Format)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("max_periods", defaults.MaxPeriods)
	v.SetDefault("schedules_file", defaults.SchedulesFile)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix("FINCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fincalc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.MaxPeriods <= 0 {
		return nil, fmt.Errorf("max_periods must be positive, got %d", settings.MaxPeriods)
	}
	if settings.Workers < 0 {
		return nil, fmt.Errorf("workers cannot be negative, got %d", settings.Workers)
	}

	return &settings, nil
}
