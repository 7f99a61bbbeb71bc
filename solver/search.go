package solver

import (
	"fmt"

	"github.com/dungeonkit/go-dungeon/grid"
)

// state is the unit of visited- and predecessor-tracking: a cell plus
// the key component. Plain search keeps the component at zero, so its
// states collapse to bare coordinates; key-aware search explores the
// same cell once per distinct key set.
type state struct {
	cell grid.Cell
	keys grid.KeySet
}

// Packed state layout: row and column take dimBits each above the key
// mask in the low keyBits. Both axes must stay below 1<<dimBits.
const (
	keyBits = grid.NumIdentities
	dimBits = 20
	maxDim  = 1 << dimBits
)

func (s state) packed() uint64 {
	return uint64(s.cell.Row)<<(dimBits+keyBits) |
		uint64(s.cell.Col)<<keyBits |
		uint64(s.keys)
}

// rules is the capability a traversal runs under: Enter guards a step
// onto a cell, Collect transforms the key component after the step.
// Walls are rejected before either is consulted.
type rules struct {
	Enter   func(sym byte, keys grid.KeySet) bool
	Collect func(sym byte, keys grid.KeySet) grid.KeySet
}

// plainRules seals every door and never collects, so the key component
// stays zero and state identity degenerates to the coordinate.
var plainRules = rules{
	Enter:   func(sym byte, _ grid.KeySet) bool { return !grid.IsDoor(sym) },
	Collect: func(_ byte, keys grid.KeySet) grid.KeySet { return keys },
}

// keyRules admits a door only when its key is held and unions in any
// key found on the entered cell.
var keyRules = rules{
	Enter: func(sym byte, keys grid.KeySet) bool {
		return !grid.IsDoor(sym) || keys.Has(grid.DoorIdentity(sym))
	},
	Collect: func(sym byte, keys grid.KeySet) grid.KeySet {
		if grid.IsKey(sym) {
			return keys.With(grid.KeyIdentity(sym))
		}
		return keys
	},
}

// runSearch is the one traversal behind both pathfinders: FIFO
// frontier, packed-key visited set and predecessor map, exit test on
// dequeue regardless of keys held. maxStates <= 0 means unbounded.
func runSearch(g *grid.Grid, r rules, maxStates int) (*Result, error) {
	if g.Height() >= maxDim || g.Width() >= maxDim {
		return nil, ErrGridTooLarge
	}

	res := &Result{}

	start, ok := g.FindMarker(grid.Start)
	if !ok {
		return res, nil
	}
	goal, ok := g.FindMarker(grid.Exit)
	if !ok {
		return res, nil
	}

	initial := state{cell: start}
	queue := []state{initial}
	visited := map[uint64]bool{initial.packed(): true}
	parents := make(map[uint64]state)
	res.QueueMaxSize = 1

	for len(queue) > 0 {
		if maxStates > 0 && res.StatesExplored >= maxStates {
			res.Truncated = true
			break
		}
		current := queue[0]
		queue = queue[1:]
		res.StatesExplored++

		if current.cell == goal {
			path, err := walkBack(parents, initial, current)
			if err != nil {
				return nil, err
			}
			res.Path = path
			res.Found = true
			res.KeysHeld = current.keys
			return res, nil
		}

		for _, d := range grid.Directions {
			cell := current.cell.Add(d)
			if !g.InBounds(cell) {
				continue
			}
			sym := g.At(cell)
			if sym == grid.Wall || !r.Enter(sym, current.keys) {
				continue
			}
			next := state{cell: cell, keys: r.Collect(sym, current.keys)}
			id := next.packed()
			if visited[id] {
				continue
			}
			visited[id] = true
			parents[id] = current
			queue = append(queue, next)
			if len(queue) > res.QueueMaxSize {
				res.QueueMaxSize = len(queue)
			}
		}
	}

	return res, nil
}

// walkBack retraces predecessor links from the terminal state to the
// initial one and returns the coordinates in start-to-exit order. The
// key component is dropped from the output. A missing link means the
// search bookkeeping is corrupt, never an ordinary "no path".
func walkBack(parents map[uint64]state, initial, terminal state) ([]grid.Cell, error) {
	path := []grid.Cell{terminal.cell}
	for current := terminal; current != initial; {
		prev, ok := parents[current.packed()]
		if !ok {
			return nil, fmt.Errorf("%w: no predecessor for (%d,%d)",
				ErrBrokenPath, current.cell.Row, current.cell.Col)
		}
		current = prev
		path = append(path, current.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
