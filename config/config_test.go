package config

import (
	"os"
	"testing"

	"github.com/dungeonkit/go-dungeon/generate"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv then clears the
	// variable for the duration of the test.
	for _, key := range []string{
		"DUNGEON_DB", "DUNGEON_ROWS", "DUNGEON_COLS",
		"DUNGEON_ROOM_RATE", "DUNGEON_KEY_PAIRS", "DUNGEON_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	p := generate.DefaultParams()

	if cfg.DBPath != "dungeons.db" {
		t.Errorf("DBPath = %q, want dungeons.db", cfg.DBPath)
	}
	if cfg.Rows != p.Rows || cfg.Cols != p.Cols || cfg.RoomRate != p.RoomRate {
		t.Errorf("dimensions = %d/%d/%d, want generator defaults %d/%d/%d",
			cfg.Rows, cfg.Cols, cfg.RoomRate, p.Rows, p.Cols, p.RoomRate)
	}
	if cfg.KeyPairs != 0 {
		t.Errorf("KeyPairs = %d, want 0", cfg.KeyPairs)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DUNGEON_DB", "/tmp/custom.db")
	t.Setenv("DUNGEON_ROWS", "31")
	t.Setenv("DUNGEON_COLS", "41")
	t.Setenv("DUNGEON_ROOM_RATE", "25")
	t.Setenv("DUNGEON_KEY_PAIRS", "3")
	t.Setenv("DUNGEON_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.Rows != 31 || cfg.Cols != 41 {
		t.Errorf("Rows/Cols = %d/%d, want 31/41", cfg.Rows, cfg.Cols)
	}
	if cfg.RoomRate != 25 {
		t.Errorf("RoomRate = %d, want 25", cfg.RoomRate)
	}
	if cfg.KeyPairs != 3 {
		t.Errorf("KeyPairs = %d, want 3", cfg.KeyPairs)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadBadInteger(t *testing.T) {
	t.Setenv("DUNGEON_ROWS", "not-a-number")

	cfg := Load()
	if cfg.Rows != generate.DefaultParams().Rows {
		t.Errorf("Rows = %d, want generator default on bad input", cfg.Rows)
	}
}
