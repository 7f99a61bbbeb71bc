// Package config loads tool settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/dungeonkit/go-dungeon/generate"
)

// Config holds the tool's configuration values.
type Config struct {
	DBPath   string // Path of the dungeon archive database
	Rows     int    // Default dungeon height
	Cols     int    // Default dungeon width
	RoomRate int    // Default extra-opening rate in percent
	KeyPairs int    // Default number of key/door pairs
	LogLevel string // Diagnostic log level name
}

// Load reads the configuration from the environment. A .env file in
// the working directory is loaded first when present. Every variable
// has a default, so the tool runs without any setup.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env file not loaded: %v", err)
	}

	p := generate.DefaultParams()
	return Config{
		DBPath:   getEnvWithDefault("DUNGEON_DB", "dungeons.db"),
		Rows:     getEnvAsInt("DUNGEON_ROWS", p.Rows),
		Cols:     getEnvAsInt("DUNGEON_COLS", p.Cols),
		RoomRate: getEnvAsInt("DUNGEON_ROOM_RATE", p.RoomRate),
		KeyPairs: getEnvAsInt("DUNGEON_KEY_PAIRS", 0),
		LogLevel: getEnvWithDefault("DUNGEON_LOG_LEVEL", "info"),
	}
}

// getEnvWithDefault retrieves an environment variable or returns a
// default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, falling
// back to the default when unset or not parsable.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("environment variable %s is not an integer: %v", key, err)
		return defaultValue
	}
	return value
}
