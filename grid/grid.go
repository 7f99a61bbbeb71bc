// Package grid implements the dungeon grid model.
// A dungeon is a rectangular block of single-character cells: walls,
// open floor, one start and one exit marker, and keys paired with the
// doors they open. The grid is the shared input of the generator, the
// solvers, and the validator, and round-trips losslessly through its
// text form.
package grid

import (
	"errors"
	"strings"
)

// Cell symbols. Keys 'a'-'f' and doors 'A'-'F' are paired by alphabet
// offset: door 'A' opens with key 'a', and so on. The glyph 'E' always
// reads as the exit marker, never as a door, so the e/E identity has a
// key but no door that can appear on a grid.
const (
	Wall  byte = '#'
	Floor byte = ' '
	Start byte = 'S'
	Exit  byte = 'E'

	keyFirst  byte = 'a'
	doorFirst byte = 'A'
)

// NumIdentities is the number of distinct key/door identities.
// The key-set bitmask and the identity pairing both depend on it,
// so it is a fixed design limit rather than a tunable. One identity's
// door glyph is the exit marker (see IsDoor), so at most five doors
// can appear on a grid.
const NumIdentities = 6

// ErrEmptyGrid indicates parsed input with no rows.
var ErrEmptyGrid = errors.New("grid: input has no rows")

// Cell is a (row, column) coordinate. Rows are zero-based and increase
// downward; columns are zero-based and increase rightward.
type Cell struct {
	Row, Col int
}

// Add returns the cell offset from c by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Directions lists the four cardinal moves in the fixed expansion
// order used by every traversal: up, down, left, right. BFS results
// do not depend on the order, but fixtures do, so it never changes.
var Directions = [4]Cell{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Grid is an immutable dungeon layout. The zero value is an empty
// grid; build one with New or Parse.
type Grid struct {
	rows []string
}

// New wraps the given rows as a Grid. The slice is copied so later
// mutation of the argument cannot alter the grid; the rows themselves
// are immutable strings.
func New(rows []string) *Grid {
	copied := make([]string, len(rows))
	copy(copied, rows)
	return &Grid{rows: copied}
}

// Parse reads a grid from its text form: one row per line. A single
// trailing newline is tolerated, and carriage returns are stripped so
// files written on any platform load identically.
func Parse(text string) (*Grid, error) {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrEmptyGrid
	}
	return &Grid{rows: strings.Split(text, "\n")}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the nominal column count, taken from the first row.
// Rectangular grids have this width in every row; bounds checks do
// not rely on it (see InBounds).
func (g *Grid) Width() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}

// Lines returns a copy of the grid's rows.
func (g *Grid) Lines() []string {
	copied := make([]string, len(g.rows))
	copy(copied, g.rows)
	return copied
}

// String renders the grid back to its text form, one row per line with
// a trailing newline. Parse(g.String()) reproduces g exactly.
func (g *Grid) String() string {
	return strings.Join(g.rows, "\n") + "\n"
}

// InBounds reports whether c addresses an existing cell. The column
// check uses the length of c's own row, not a global width, so even a
// ragged grid is never read out of range.
func (g *Grid) InBounds(c Cell) bool {
	if c.Row < 0 || c.Row >= len(g.rows) {
		return false
	}
	return c.Col >= 0 && c.Col < len(g.rows[c.Row])
}

// At returns the symbol at c, or Wall for out-of-bounds coordinates so
// callers can treat the surrounding void as solid.
func (g *Grid) At(c Cell) byte {
	if !g.InBounds(c) {
		return Wall
	}
	return g.rows[c.Row][c.Col]
}

// Passable reports whether a plain search may occupy c: in bounds, not
// a wall, and not a door of any identity. Doors count as impassable
// here regardless of keys; only the key-aware search can open them.
func (g *Grid) Passable(c Cell) bool {
	sym := g.At(c)
	return sym != Wall && !IsDoor(sym)
}

// FindMarker locates the first cell holding sym, scanning rows
// top-to-bottom and columns left-to-right. The second return value is
// false when the symbol is absent.
func (g *Grid) FindMarker(sym byte) (Cell, bool) {
	for r, row := range g.rows {
		for c := 0; c < len(row); c++ {
			if row[c] == sym {
				return Cell{Row: r, Col: c}, true
			}
		}
	}
	return Cell{}, false
}

// Count returns how many cells hold sym.
func (g *Grid) Count(sym byte) int {
	n := 0
	for _, row := range g.rows {
		n += strings.Count(row, string(sym))
	}
	return n
}

// IsKey reports whether sym is one of the six key symbols.
func IsKey(sym byte) bool {
	return sym >= keyFirst && sym < keyFirst+NumIdentities
}

// IsDoor reports whether sym is a door symbol. 'E' is not one: that
// glyph is the exit marker, so an 'E' cell is always the exit and the
// e/E identity's door cannot be expressed.
func IsDoor(sym byte) bool {
	return sym >= doorFirst && sym < doorFirst+NumIdentities && sym != Exit
}

// KeyIdentity returns the identity index (0-5) of a key symbol.
// The result is meaningless if sym is not a key.
func KeyIdentity(sym byte) int {
	return int(sym - keyFirst)
}

// DoorIdentity returns the identity index (0-5) of a door symbol.
// The result is meaningless if sym is not a door.
func DoorIdentity(sym byte) int {
	return int(sym - doorFirst)
}

// KeySymbol returns the key symbol for identity id.
func KeySymbol(id int) byte {
	return keyFirst + byte(id)
}

// DoorSymbol returns the door glyph for identity id; KeySymbol(id)
// opens it. For the e/E identity the returned byte equals Exit and is
// not a door (see IsDoor).
func DoorSymbol(id int) byte {
	return doorFirst + byte(id)
}

// IsValidSymbol reports whether sym belongs to the grid alphabet.
func IsValidSymbol(sym byte) bool {
	switch sym {
	case Wall, Floor, Start, Exit:
		return true
	}
	return IsKey(sym) || IsDoor(sym)
}
