package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dungeonkit/go-dungeon/config"
	"github.com/dungeonkit/go-dungeon/grid"
	"github.com/dungeonkit/go-dungeon/validate"
)

func runValidate(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	pathFile := fs.String("path", "", "Cross-check a path file (JSON pairs, as printed by solve --json)")
	asJSON := fs.Bool("json", false, "Output the report as JSON")
	id := fs.String("id", "", "Load the dungeon from the archive by record ID")
	dbPath := fs.String("db", cfg.DBPath, "Archive database path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: dungeon validate [<dungeon.txt>] [options]

Check dungeon structure: rectangular shape, known symbols, marker
multiplicity and key/door pairing. With --path, additionally verify
that a previously computed route is well-formed for this dungeon.
Exits non-zero when a check fails. Reads stdin when no file is given.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Structural checks
  dungeon validate dungeon.txt

  # Verify a solve result against its dungeon
  dungeon solve dungeon.txt --json > result.json
  jq .path result.json > path.json
  dungeon validate dungeon.txt --path path.json

  # Machine-readable report
  dungeon validate dungeon.txt --json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := loadGrid(fs.Arg(0), *id, *dbPath)
	if err != nil {
		return err
	}

	report := validate.CheckGrid(g)

	var pathErr error
	checkedPath := false
	if *pathFile != "" {
		cells, err := readPathFile(*pathFile)
		if err != nil {
			return err
		}
		checkedPath = true
		pathErr = validate.CheckPath(g, cells)
	}

	if *asJSON {
		out := map[string]any{"report": report}
		if checkedPath {
			out["path_valid"] = pathErr == nil
			if pathErr != nil {
				out["path_error"] = pathErr.Error()
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printReport(report)
		if checkedPath {
			if pathErr != nil {
				fmt.Printf("✗ Path INVALID: %v\n", pathErr)
			} else {
				fmt.Println("✓ Path valid")
			}
		}
	}

	if !report.Valid || pathErr != nil {
		os.Exit(1)
	}
	return nil
}

func printReport(report *validate.Report) {
	fmt.Println("=== Dungeon Validation ===")
	fmt.Printf("Grid: %dx%d, %d walls, %d floors, %d keys, %d doors\n",
		report.Summary.Rows, report.Summary.Cols,
		report.Summary.Walls, report.Summary.Floors,
		report.Summary.Keys, report.Summary.Doors)
	fmt.Println()

	if len(report.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(report.Errors))
		for _, issue := range report.Errors {
			fmt.Printf("  ✗ [%s] %s\n", issue.Category, issue.Message)
			if len(issue.Location) > 0 {
				fmt.Printf("    Location: %v\n", issue.Location)
			}
			if issue.Suggestion != "" {
				fmt.Printf("    Suggestion: %s\n", issue.Suggestion)
			}
			fmt.Println()
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(report.Warnings))
		for _, issue := range report.Warnings {
			fmt.Printf("  ⚠ [%s] %s\n", issue.Category, issue.Message)
			if len(issue.Location) > 0 {
				fmt.Printf("    Location: %v\n", issue.Location)
			}
			if issue.Suggestion != "" {
				fmt.Printf("    Suggestion: %s\n", issue.Suggestion)
			}
			fmt.Println()
		}
	}

	if len(report.Info) > 0 {
		fmt.Printf("Info (%d):\n", len(report.Info))
		for _, issue := range report.Info {
			fmt.Printf("  ℹ [%s] %s\n", issue.Category, issue.Message)
			if len(issue.Location) > 0 {
				fmt.Printf("    Location: %v\n", issue.Location)
			}
			fmt.Println()
		}
	}

	fmt.Println("───────────────────────────────────")
	if report.Valid {
		fmt.Println("✓ Validation PASSED")
	} else {
		fmt.Println("✗ Validation FAILED")
		fmt.Printf("  %d error(s) must be fixed\n", len(report.Errors))
	}
}

// readPathFile loads a route as a JSON array of [row, col] pairs.
func readPathFile(path string) ([]grid.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read path: %w", err)
	}

	var pairs [][2]int
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}

	cells := make([]grid.Cell, len(pairs))
	for i, p := range pairs {
		cells[i] = grid.Cell{Row: p[0], Col: p[1]}
	}
	return cells, nil
}
