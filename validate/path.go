// Package validate checks candidate paths and grid structure
// independently of the searches that produce them.
package validate

import (
	"errors"
	"fmt"

	"github.com/dungeonkit/go-dungeon/grid"
)

var (
	// ErrEmptyPath reports a path with no cells.
	ErrEmptyPath = errors.New("validate: empty path")

	// ErrStartMismatch reports a path that does not begin at the start
	// marker, or a grid that has none.
	ErrStartMismatch = errors.New("validate: path does not begin at the start marker")

	// ErrExitMismatch reports a path that does not end at the exit
	// marker, or a grid that has none.
	ErrExitMismatch = errors.New("validate: path does not end at the exit marker")

	// ErrBlockedCell reports a path cell that is a wall or outside the
	// grid.
	ErrBlockedCell = errors.New("validate: path enters a wall or leaves the grid")

	// ErrIllegalStep reports consecutive path cells that are not one
	// unit apart on exactly one axis.
	ErrIllegalStep = errors.New("validate: consecutive cells are not one unit apart")
)

// CheckPath verifies a candidate path against a grid: it must be
// non-empty, run from the start marker to the exit marker, stay in
// bounds and off walls, and move one cell at a time with no diagonals.
// Door and key legality is deliberately not checked here; a path that
// walks through a locked door still passes.
func CheckPath(g *grid.Grid, path []grid.Cell) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	start, ok := g.FindMarker(grid.Start)
	if !ok {
		return fmt.Errorf("%w: grid has no start marker", ErrStartMismatch)
	}
	exit, ok := g.FindMarker(grid.Exit)
	if !ok {
		return fmt.Errorf("%w: grid has no exit marker", ErrExitMismatch)
	}

	if path[0] != start {
		return fmt.Errorf("%w: first cell is (%d,%d)", ErrStartMismatch, path[0].Row, path[0].Col)
	}
	if last := path[len(path)-1]; last != exit {
		return fmt.Errorf("%w: last cell is (%d,%d)", ErrExitMismatch, last.Row, last.Col)
	}

	for i, c := range path {
		if !g.InBounds(c) || g.At(c) == grid.Wall {
			return fmt.Errorf("%w: cell %d at (%d,%d)", ErrBlockedCell, i, c.Row, c.Col)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		dr, dc := abs(c.Row-prev.Row), abs(c.Col-prev.Col)
		if !(dr == 1 && dc == 0 || dr == 0 && dc == 1) {
			return fmt.Errorf("%w: step %d from (%d,%d) to (%d,%d)",
				ErrIllegalStep, i, prev.Row, prev.Col, c.Row, c.Col)
		}
	}

	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
