// Package config loads editor settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file base name looked up in the config directory.
const FileName = "mapeditor"

type WindowConfig struct {
	Width    int `mapstructure:"width"`
	Height   int `mapstructure:"height"`
	CellSize int `mapstructure:"cellSize"`
}

type LayerConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type Config struct {
	ContentRoot string       `mapstructure:"contentRoot"`
	LogLevel    string       `mapstructure:"logLevel"`
	LogFile     string       `mapstructure:"logFile"`
	DefaultPack string       `mapstructure:"defaultPack"`
	Watch       bool         `mapstructure:"watch"`
	Layers      LayerConfig  `mapstructure:"layers"`
	Window      WindowConfig `mapstructure:"window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("contentRoot", "./content")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("defaultPack", "DefaultPack")
	v.SetDefault("watch", true)

	v.SetDefault("layers.min", -1)
	v.SetDefault("layers.max", 1)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 736)
	v.SetDefault("window.cellSize", 32)
}

// Load reads mapeditor.{yaml,json,...} from configDir. A missing file is not
// an error; defaults and MAPEDITOR_* environment variables still apply.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("MAPEDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Layers.Min > cfg.Layers.Max {
		return nil, fmt.Errorf("config: layers.min (%d) is above layers.max (%d)", cfg.Layers.Min, cfg.Layers.Max)
	}
	if cfg.Window.CellSize <= 0 {
		return nil, fmt.Errorf("config: window.cellSize must be positive, got %d", cfg.Window.CellSize)
	}
	return &cfg, nil
}
