// Package generate produces maze-style dungeons for the solvers to
// work on. Carving uses randomized depth-first backtracking over an
// odd-coordinate lattice so every corridor stays one cell wide, then
// optionally knocks out extra walls to open rooms.
package generate

import (
	"bytes"
	"math/rand"

	"github.com/dungeonkit/go-dungeon/grid"
)

// Params controls dungeon generation.
type Params struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// RoomRate is the percentage of lattice cells knocked out as extra
	// openings beyond the spanning-tree maze. Zero keeps the maze a
	// perfect tree with exactly one route between any two cells.
	RoomRate int `json:"room_rate"`
}

// DefaultParams returns the standard generation parameters.
func DefaultParams() Params {
	return Params{
		Rows:     21,
		Cols:     21,
		RoomRate: 10,
	}
}

// carveSteps jumps two cells at a time so a wall survives between
// parallel corridors.
var carveSteps = [4]grid.Cell{{Row: -2, Col: 0}, {Row: 2, Col: 0}, {Row: 0, Col: -2}, {Row: 0, Col: 2}}

// Dungeon generates a dungeon from the given parameters. The random
// source is passed in by the caller, so a fixed seed reproduces the
// same dungeon. Even dimensions are bumped to the next odd value and
// anything below 3 is clamped; the result always has a full wall
// border, at most one start and at most one exit.
func Dungeon(p Params, rng *rand.Rand) *grid.Grid {
	rows, cols := p.Rows, p.Cols
	if rows%2 == 0 {
		rows++
	}
	if cols%2 == 0 {
		cols++
	}
	if rows < 3 {
		rows = 3
	}
	if cols < 3 {
		cols = 3
	}

	cells := make([][]byte, rows)
	for r := range cells {
		cells[r] = bytes.Repeat([]byte{grid.Wall}, cols)
	}

	cells[1][1] = grid.Floor
	carve(cells, 1, 1, rng)

	// Extra openings beyond the spanning tree. Misses (even parity or
	// already open) are not retried, so RoomRate is a density target,
	// not an exact count.
	lattice := ((rows - 1) / 2) * ((cols - 1) / 2)
	for i := 0; i < lattice*p.RoomRate/100; i++ {
		r, c := rng.Intn(rows), rng.Intn(cols)
		if cells[r][c] == grid.Wall && r%2 == 1 && c%2 == 1 {
			cells[r][c] = grid.Floor
		}
	}

	cells[1][1] = grid.Start
	placeExit(cells)

	return fromBytes(cells)
}

// carve opens corridors by randomized depth-first backtracking from
// the given lattice cell.
func carve(cells [][]byte, row, col int, rng *rand.Rand) {
	dirs := carveSteps
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		nr, nc := row+d.Row, col+d.Col
		if !carveable(cells, nr, nc) || cells[nr][nc] != grid.Wall {
			continue
		}
		cells[nr][nc] = grid.Floor
		cells[(row+nr)/2][(col+nc)/2] = grid.Floor
		carve(cells, nr, nc, rng)
	}
}

// carveable keeps the lattice on interior odd coordinates so the
// border is never breached.
func carveable(cells [][]byte, row, col int) bool {
	return row > 0 && row < len(cells)-1 &&
		col > 0 && col < len(cells[0])-1 &&
		row%2 == 1 && col%2 == 1
}

// placeExit marks the open cell closest to the bottom-right corner.
// A dungeon too small to hold a second open cell keeps only its start.
func placeExit(cells [][]byte) {
	rows, cols := len(cells), len(cells[0])
	for r := rows - 2; r > 0; r-- {
		for c := cols - 2; c > 0; c-- {
			if cells[r][c] == grid.Floor {
				cells[r][c] = grid.Exit
				return
			}
		}
	}
}

func toBytes(g *grid.Grid) [][]byte {
	lines := g.Lines()
	rows := make([][]byte, len(lines))
	for i, line := range lines {
		rows[i] = []byte(line)
	}
	return rows
}

func fromBytes(rows [][]byte) *grid.Grid {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return grid.New(lines)
}
