package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level vnstats configuration.
type Config struct {
	DBPath        string      `mapstructure:"db_path"`
	Collector     Collector   `mapstructure:"collector"`
	RetentionDays int         `mapstructure:"retention_days"`
	Leveling      string      `mapstructure:"leveling_strategy"`
	Leaderboard   Leaderboard `mapstructure:"leaderboard"`
	Output        Output      `mapstructure:"output"`
}

// Collector controls event buffering.
type Collector struct {
	FlushInterval   time.Duration `mapstructure:"flush_interval"`
	BufferThreshold int           `mapstructure:"buffer_threshold"`
}

// Leaderboard selects the ranking backend.
type Leaderboard struct {
	Provider  string `mapstructure:"provider"` // static | redis
	RedisAddr string `mapstructure:"redis_addr"`
	UserID    string `mapstructure:"user_id"`
	Name      string `mapstructure:"name"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("collector.flush_interval", DefaultCollector.FlushInterval)
	v.SetDefault("collector.buffer_threshold", DefaultCollector.BufferThreshold)
	v.SetDefault("retention_days", DefaultRetentionDays)
	v.SetDefault("leveling_strategy", DefaultLevelingStrategy)
	v.SetDefault("leaderboard.provider", DefaultLeaderboard.Provider)
	v.SetDefault("leaderboard.redis_addr", DefaultLeaderboard.RedisAddr)
	v.SetDefault("leaderboard.user_id", DefaultLeaderboard.UserID)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
