// Package config provides configuration loading and defaults for vnstats.
package config

import "time"

// DefaultConfigDir is the default location for vnstats configuration.
const DefaultConfigDir = "~/.config/vnstats"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "vnstats.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultCollector holds the default event buffering parameters.
var DefaultCollector = Collector{
	FlushInterval:   30 * time.Second,
	BufferThreshold: 10,
}

// DefaultRetentionDays is how long raw events are kept before the weekly
// sweep removes them.
const DefaultRetentionDays = 365

// DefaultLevelingStrategy selects the XP-to-level curve.
const DefaultLevelingStrategy = "sqrt"

// DefaultLeaderboard points at no backend: the static demo provider.
var DefaultLeaderboard = Leaderboard{
	Provider:  "static",
	RedisAddr: "localhost:6379",
	UserID:    "me",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
