package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/dungeonkit/go-dungeon/archive"
	"github.com/dungeonkit/go-dungeon/config"
	"github.com/dungeonkit/go-dungeon/grid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	initLogging(cfg.LogLevel)

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := runGenerate(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "solve":
		if err := runSolve(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := runValidate(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := runShow(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := runStats(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "archive":
		if err := runArchive(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("dungeon version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func initLogging(level string) {
	log.SetOutput(os.Stderr)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func printUsage() {
	fmt.Println(`dungeon - dungeon generation and pathfinding tool

Usage:
  dungeon <command> [options]

Commands:
  generate   Generate a random dungeon
  solve      Find a shortest route from S to E
  validate   Check dungeon structure and optionally a path
  show       Display a dungeon from a file or the archive
  stats      Generate and solve a batch, print aggregates
  archive    List or export archived dungeons
  help       Show this help message
  version    Show version information

Examples:
  # Generate a dungeon and print it
  dungeon generate --rows 21 --cols 21 --seed 7

  # Generate with two key/door pairs and archive it
  dungeon generate --keys 2 --save

  # Solve a dungeon file with the key-aware search
  dungeon solve dungeon.txt --keys --overlay

  # Validate structure and a solve result
  dungeon validate dungeon.txt --path path.json

  # Aggregate solve rates over 50 dungeons
  dungeon stats --count 50 --keys 2

For command-specific help, run:
  dungeon <command> --help`)
}

// loadGrid reads a dungeon from the archive (when id is set), from a
// file, or from stdin when path is empty or "-".
func loadGrid(path, id, dbPath string) (*grid.Grid, error) {
	if id != "" {
		store, err := archive.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()

		rec, err := store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
		return rec.Dungeon()
	}

	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dungeon: %w", err)
	}
	return grid.Parse(string(data))
}
