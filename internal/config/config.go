// This file defines the configuration structure for the xkcd tools.
package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the CLI and the server.
// It maps directly to the structure of config.yml.
type Config struct {
	XKCD struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		UserAgent      string `mapstructure:"user_agent"`
	} `mapstructure:"xkcd"`
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Watch struct {
		IntervalMinutes int `mapstructure:"interval_minutes"`
	} `mapstructure:"watch"`
	Thumbnail struct {
		Width  uint `mapstructure:"width"`
		Height uint `mapstructure:"height"`
	} `mapstructure:"thumbnail"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")
	v.AddConfigPath(".")

	// XKCD_SERVER_PORT overrides `server.port`, and so on.
	v.SetEnvPrefix("XKCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("xkcd.base_url", "https://xkcd.com")
	v.SetDefault("xkcd.timeout_seconds", 0)
	v.SetDefault("xkcd.user_agent", "xkcd-go")
	v.SetDefault("server.port", 8080)
	v.SetDefault("watch.interval_minutes", 30)
	v.SetDefault("thumbnail.width", 200)
	v.SetDefault("thumbnail.height", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "dev")
	return v
}

// Load reads configuration from "config.yml" in the current directory,
// applies XKCD_* environment overrides and fills in defaults.
func Load() (*Config, error) {
	v := newViper()
	if err := read(v); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Watch loads the configuration like Load and then calls onChange with the
// re-read configuration every time config.yml is modified. Changes that fail
// to parse are handed to onError and otherwise ignored.
func Watch(onChange func(*Config), onError func(error)) (*Config, error) {
	v := newViper()
	if err := read(v); err != nil {
		return nil, err
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := unmarshal(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(next)
	})
	// WatchConfig needs a config file to watch.
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}
	return cfg, nil
}

func read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return nil
		}
		return err
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
