package generate

import (
	"math/rand"

	"github.com/dungeonkit/go-dungeon/grid"
	"github.com/dungeonkit/go-dungeon/solver"
)

// PlaceKeyDoors threads up to pairs key/door pairs onto the shortest
// open route between the start and exit markers. The route is split
// into one segment per pair; the key lands in the front half of its
// segment and the door in the back half, so every key is collectable
// before its door and the dungeon stays solvable for the key-aware
// search. Identities already present on the grid are skipped.
//
// The input grid is not modified; the dungeon with placements and the
// number of pairs actually placed are returned. Placement stops early
// when the route is too short or no identities remain. The e/E
// identity is never used, so at most five pairs can be placed.
func PlaceKeyDoors(g *grid.Grid, pairs int, rng *rand.Rand) (*grid.Grid, int) {
	if pairs <= 0 {
		return g, 0
	}
	if pairs > grid.NumIdentities {
		pairs = grid.NumIdentities
	}

	path, err := solver.BFSPath(g)
	if err != nil || len(path) < 3 {
		return g, 0
	}
	interior := path[1 : len(path)-1]

	// Each pair needs a key cell and a door cell of its own.
	for pairs > 0 && len(interior)/pairs < 2 {
		pairs--
	}
	if pairs == 0 {
		return g, 0
	}

	cells := toBytes(g)
	placed := 0
	seg := len(interior) / pairs

	for i := 0; i < pairs; i++ {
		id, ok := freeIdentity(g, placed)
		if !ok {
			break
		}

		lo, half := i*seg, seg/2
		key := interior[lo+rng.Intn(half)]
		door := interior[lo+half+rng.Intn(seg-half)]
		if cells[key.Row][key.Col] != grid.Floor || cells[door.Row][door.Col] != grid.Floor {
			continue
		}

		cells[key.Row][key.Col] = grid.KeySymbol(id)
		cells[door.Row][door.Col] = grid.DoorSymbol(id)
		placed++
	}

	if placed == 0 {
		return g, 0
	}
	return fromBytes(cells), placed
}

// freeIdentity returns the nth identity whose key and door symbols are
// both absent from the grid.
func freeIdentity(g *grid.Grid, n int) (int, bool) {
	for id := 0; id < grid.NumIdentities; id++ {
		if grid.DoorSymbol(id) == grid.Exit {
			// An 'E' door would read as a second exit; the e/E
			// identity is never placed.
			continue
		}
		if g.Count(grid.KeySymbol(id)) > 0 || g.Count(grid.DoorSymbol(id)) > 0 {
			continue
		}
		if n == 0 {
			return id, true
		}
		n--
	}
	return 0, false
}
