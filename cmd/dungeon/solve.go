package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/dungeonkit/go-dungeon/config"
	"github.com/dungeonkit/go-dungeon/grid"
	"github.com/dungeonkit/go-dungeon/solver"
)

func runSolve(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	useKeys := fs.Bool("keys", false, "Use the key-aware search (collects a-f, opens A-F)")
	overlay := fs.Bool("overlay", false, "Print the dungeon with the route marked by *")
	asJSON := fs.Bool("json", false, "Output the result as JSON")
	id := fs.String("id", "", "Load the dungeon from the archive by record ID")
	dbPath := fs.String("db", cfg.DBPath, "Archive database path")
	maxStates := fs.Int("max-states", 0, "Stop after exploring this many states (0 = unlimited)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: dungeon solve [<dungeon.txt>] [options]

Find a shortest route from S to E with breadth-first search. The plain
search treats every door as a wall; with --keys the search collects
keys and opens the matching doors. Reads stdin when no file is given.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Route as coordinates
  dungeon solve dungeon.txt

  # Key-aware search, drawn onto the dungeon
  dungeon solve dungeon.txt --keys --overlay

  # Solve straight from the generator
  dungeon generate --seed 7 | dungeon solve --overlay

  # Machine-readable result for an archived dungeon
  dungeon solve --id 4be12e4e-9f5c-46a8-9b1f-3c1f6f6f2a10 --json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := loadGrid(fs.Arg(0), *id, *dbPath)
	if err != nil {
		return err
	}

	s := solver.New(g).WithMaxStates(*maxStates)
	var res *solver.Result
	if *useKeys {
		res, err = s.SolveWithKeys()
	} else {
		res, err = s.Solve()
	}
	if err != nil {
		return err
	}
	log.Debugf("explored %d states, queue peak %d", res.StatesExplored, res.QueueMaxSize)

	if *asJSON {
		return printSolveJSON(res, *useKeys)
	}

	if !res.Found {
		if res.Truncated {
			fmt.Printf("No path found (search stopped after %d states)\n", res.StatesExplored)
		} else {
			fmt.Println("No path found")
		}
		return nil
	}

	fmt.Printf("Path length: %d\n", len(res.Path))
	if *useKeys && res.KeysHeld.Count() > 0 {
		fmt.Printf("Keys collected: %s\n", res.KeysHeld)
	}
	if *overlay {
		fmt.Print(renderOverlay(g, res.Path))
	} else {
		for _, c := range res.Path {
			fmt.Printf("(%d,%d)\n", c.Row, c.Col)
		}
	}

	return nil
}

func printSolveJSON(res *solver.Result, withKeys bool) error {
	pairs := make([][2]int, len(res.Path))
	for i, c := range res.Path {
		pairs[i] = [2]int{c.Row, c.Col}
	}

	out := map[string]any{
		"found":           res.Found,
		"length":          len(res.Path),
		"path":            pairs,
		"states_explored": res.StatesExplored,
		"truncated":       res.Truncated,
	}
	if withKeys {
		out["keys_held"] = res.KeysHeld.String()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// renderOverlay draws the route onto the dungeon with '*' marks,
// preserving the S and E markers.
func renderOverlay(g *grid.Grid, path []grid.Cell) string {
	rows := g.Lines()
	cells := make([][]byte, len(rows))
	for i, row := range rows {
		cells[i] = []byte(row)
	}

	for _, c := range path {
		if !g.InBounds(c) {
			continue
		}
		if sym := cells[c.Row][c.Col]; sym != grid.Start && sym != grid.Exit {
			cells[c.Row][c.Col] = '*'
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
