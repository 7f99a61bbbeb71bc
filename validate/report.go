package validate

import (
	"fmt"

	"github.com/dungeonkit/go-dungeon/grid"
)

// Report contains the result of a structural grid check.
type Report struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Info     []Issue `json:"info,omitempty"`
	Summary  Summary `json:"summary"`
}

// Issue describes a single finding.
type Issue struct {
	Severity   string   `json:"severity"` // "error", "warning", "info"
	Category   string   `json:"category"` // "shape", "symbols", "markers", "pairing"
	Message    string   `json:"message"`
	Location   []string `json:"location,omitempty"` // affected cells or rows
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary provides an overview of the checked grid.
type Summary struct {
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
	Walls    int `json:"walls"`
	Floors   int `json:"floors"`
	Keys     int `json:"keys"`
	Doors    int `json:"doors"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Checker accumulates structural findings for one grid.
type Checker struct {
	g      *grid.Grid
	report *Report
}

// NewChecker creates a checker for the given grid.
func NewChecker(g *grid.Grid) *Checker {
	return &Checker{
		g: g,
		report: &Report{
			Valid: true,
			Summary: Summary{
				Rows: g.Height(),
				Cols: g.Width(),
			},
		},
	}
}

// CheckGrid runs all structural checks and returns the report.
func CheckGrid(g *grid.Grid) *Report {
	return NewChecker(g).Check()
}

// Check runs all structural checks.
func (c *Checker) Check() *Report {
	c.checkShape()
	c.checkSymbols()
	c.checkMarkers()
	c.checkPairing()

	c.report.Valid = len(c.report.Errors) == 0
	c.report.Summary.Errors = len(c.report.Errors)
	c.report.Summary.Warnings = len(c.report.Warnings)

	return c.report
}

// checkShape verifies the grid is non-empty and rectangular.
func (c *Checker) checkShape() {
	if c.g.Height() == 0 {
		c.AddError("shape", "grid has no rows", nil, "supply at least one row")
		return
	}

	want := c.g.Width()
	for i, row := range c.g.Lines() {
		if len(row) != want {
			c.AddError("shape",
				fmt.Sprintf("row %d is %d cells wide, want %d", i, len(row), want),
				[]string{fmt.Sprintf("row %d", i)},
				"pad or trim the row to the grid width")
		}
	}
}

// checkSymbols rejects anything outside the cell alphabet and tallies
// the summary counts.
func (c *Checker) checkSymbols() {
	for r, row := range c.g.Lines() {
		for col := 0; col < len(row); col++ {
			sym := row[col]
			switch {
			case sym == grid.Wall:
				c.report.Summary.Walls++
			case sym == grid.Floor:
				c.report.Summary.Floors++
			case sym == grid.Start, sym == grid.Exit:
				// Tallied by checkMarkers.
			case grid.IsKey(sym):
				c.report.Summary.Keys++
			case grid.IsDoor(sym):
				c.report.Summary.Doors++
			default:
				c.AddError("symbols",
					fmt.Sprintf("unknown symbol %q", sym),
					[]string{cellRef(grid.Cell{Row: r, Col: col})},
					"use #, space, S, E, a-f or A-F")
			}
		}
	}
}

// checkMarkers enforces at most one start and one exit. Absence is
// legal for the searches, so it is only flagged as a warning.
func (c *Checker) checkMarkers() {
	markers := []struct {
		sym  byte
		name string
	}{
		{grid.Start, "start"},
		{grid.Exit, "exit"},
	}
	for _, m := range markers {
		switch n := c.g.Count(m.sym); {
		case n == 0:
			c.AddWarning("markers",
				fmt.Sprintf("no %s marker; searches will return the empty path", m.name),
				nil,
				fmt.Sprintf("place exactly one %q", m.sym))
		case n > 1:
			c.AddError("markers",
				fmt.Sprintf("%d %s markers, want at most one", n, m.name),
				nil,
				fmt.Sprintf("remove the extra %q markers", m.sym))
		}
	}
}

// checkPairing flags doors that can never open and keys with nothing
// to unlock.
func (c *Checker) checkPairing() {
	for id := 0; id < grid.NumIdentities; id++ {
		keys := c.g.Count(grid.KeySymbol(id))
		// An 'E' cell is the exit marker, never a door, so the e/E
		// identity's door count stays zero.
		doors := 0
		if grid.DoorSymbol(id) != grid.Exit {
			doors = c.g.Count(grid.DoorSymbol(id))
		}

		if doors > 0 && keys == 0 {
			c.AddWarning("pairing",
				fmt.Sprintf("door %q has no matching key", grid.DoorSymbol(id)),
				nil,
				fmt.Sprintf("place key %q or remove the door", grid.KeySymbol(id)))
		}
		if keys > 0 && doors == 0 {
			c.AddInfo("pairing",
				fmt.Sprintf("key %q has no matching door", grid.KeySymbol(id)),
				nil)
		}
	}
}

// AddError adds an error finding.
func (c *Checker) AddError(category, message string, location []string, suggestion string) {
	c.report.Errors = append(c.report.Errors, Issue{
		Severity:   "error",
		Category:   category,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// AddWarning adds a warning finding.
func (c *Checker) AddWarning(category, message string, location []string, suggestion string) {
	c.report.Warnings = append(c.report.Warnings, Issue{
		Severity:   "warning",
		Category:   category,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// AddInfo adds an informational finding.
func (c *Checker) AddInfo(category, message string, location []string) {
	c.report.Info = append(c.report.Info, Issue{
		Severity: "info",
		Category: category,
		Message:  message,
		Location: location,
	})
}

func cellRef(c grid.Cell) string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
