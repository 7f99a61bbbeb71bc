package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dungeonkit/go-dungeon/archive"
	"github.com/dungeonkit/go-dungeon/config"
)

func runShow(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "Show an archived dungeon by record ID")
	dbPath := fs.String("db", cfg.DBPath, "Archive database path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: dungeon show <dungeon.txt>
       dungeon show --id <record-id>

Display a dungeon. Archived dungeons print their metadata to stderr,
so the grid itself stays pipeable.

Examples:
  dungeon show dungeon.txt
  dungeon show --id 4be12e4e-9f5c-46a8-9b1f-3c1f6f6f2a10 | dungeon solve --overlay
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id != "" {
		store, err := archive.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()

		rec, err := store.Get(*id)
		if err != nil {
			return fmt.Errorf("load %s: %w", *id, err)
		}

		fmt.Fprintf(os.Stderr, "Dungeon %s\n", rec.ID)
		fmt.Fprintf(os.Stderr, "  Seed: %d\n", rec.Seed)
		fmt.Fprintf(os.Stderr, "  Size: %dx%d, room rate %d, key pairs %d\n",
			rec.Rows, rec.Cols, rec.RoomRate, rec.KeyPairs)
		fmt.Fprintf(os.Stderr, "  Created: %s\n", rec.CreatedAt.Format(time.RFC3339))
		fmt.Print(rec.Grid)
		return nil
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("dungeon file or --id required")
	}

	g, err := loadGrid(fs.Arg(0), "", "")
	if err != nil {
		return err
	}
	fmt.Print(g.String())
	return nil
}
