// Package config loads organizer settings from defaults, an optional config
// file and ORGANIZER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage selects and locates the persistence backend.
type Storage struct {
	// Driver is "file" (YAML snapshot) or "sqlite".
	Driver string `mapstructure:"driver"`
	// Path is the data file location.
	Path string `mapstructure:"path"`
}

// HTTP configures the API front end started by `organizer serve`.
type HTTP struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout"`
	WriteTimeoutSec int    `mapstructure:"write_timeout"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout"`
}

// Birthdays holds reminder defaults.
type Birthdays struct {
	// DefaultDays is the lookahead window used when a caller does not
	// supply one.
	DefaultDays int `mapstructure:"default_days"`
}

// Log configures structured logging.
type Log struct {
	Level string `mapstructure:"level"`
}

// Config is the complete organizer configuration.
type Config struct {
	Storage   Storage   `mapstructure:"storage"`
	HTTP      HTTP      `mapstructure:"http"`
	Birthdays Birthdays `mapstructure:"birthdays"`
	Log       Log       `mapstructure:"log"`
}

// Load builds the configuration. When path is empty, a config.yaml in the
// default data directory is used if present; a missing optional file is not
// an error. An explicitly given file must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ORGANIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDataDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultDataDir returns the per-user organizer directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".organizer"
	}
	return filepath.Join(home, ".organizer")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(DefaultDataDir(), "organizer.yaml"))
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5)
	v.SetDefault("http.write_timeout", 10)
	v.SetDefault("http.idle_timeout", 60)
	v.SetDefault("birthdays.default_days", 7)
	v.SetDefault("log.level", "info")
}
