package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/renato0307/kview/internal/interval"
	"github.com/renato0307/kview/internal/settings"
	"github.com/renato0307/kview/internal/ui"
)

const envPrefix = "KVIEW"

// Config is the merged result of defaults, the config file, KVIEW_*
// environment variables and flags, in increasing precedence.
type Config struct {
	Theme    string `mapstructure:"theme"`
	Language string `mapstructure:"language"`
	Dummy    bool   `mapstructure:"dummy"`
	// Refresh is the interval key used when the user has none stored.
	Refresh string `mapstructure:"refresh"`

	Log struct {
		File       string `mapstructure:"file"`
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		MaxSize    int    `mapstructure:"max-size"`
		MaxBackups int    `mapstructure:"max-backups"`
	} `mapstructure:"log"`

	Settings struct {
		Namespace string `mapstructure:"namespace"`
		Name      string `mapstructure:"name"` // derived from the kubeconfig user when empty
		File      string `mapstructure:"file"`
	} `mapstructure:"settings"`
}

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"theme":              "theme",
	"language":           "language",
	"dummy":              "dummy",
	"refresh":            "refresh",
	"log-file":           "log.file",
	"log-level":          "log.level",
	"log-format":         "log.format",
	"settings-namespace": "settings.namespace",
	"settings-name":      "settings.name",
	"settings-file":      "settings.file",
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "kview")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "charm")
	v.SetDefault("language", "en")
	v.SetDefault("dummy", false)
	v.SetDefault("refresh", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max-size", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("settings.namespace", settings.DefaultNamespace)
}

// loadConfig reads the configuration. A missing default config file is not
// an error; a missing explicit one is.
func loadConfig(v *viper.Viper, configFile string, flags *pflag.FlagSet) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !interval.Known(c.Refresh) {
		return fmt.Errorf("%w: %q (valid: %s, %s)", interval.ErrUnknownInterval,
			c.Refresh, strings.Join(interval.Keys(), ", "), interval.OffKey)
	}
	if c.Theme != "" && !slices.Contains(ui.AvailableThemes(), c.Theme) {
		return fmt.Errorf("unknown theme %q (valid: %s)", c.Theme, strings.Join(ui.AvailableThemes(), ", "))
	}
	return nil
}

// settingsFile returns the local settings file path.
func (c *Config) settingsFile() (string, error) {
	if c.Settings.File != "" {
		return c.Settings.File, nil
	}
	return settings.DefaultFilePath()
}
