// Package solver finds shortest paths through dungeon grids using
// breadth-first search. The plain search treats every door as a wall;
// the key-aware search runs over an augmented state space of
// (position, keys held) so a door becomes passable once its key has
// been picked up somewhere earlier on the route.
package solver

import (
	"errors"

	"github.com/dungeonkit/go-dungeon/grid"
)

var (
	// ErrGridTooLarge reports a grid whose dimensions do not fit the
	// packed state encoding (2^20 rows or columns).
	ErrGridTooLarge = errors.New("solver: grid exceeds packed state dimensions")

	// ErrBrokenPath reports a predecessor chain that fails to reach the
	// start state. It signals corrupt search bookkeeping, not an
	// unsolvable grid.
	ErrBrokenPath = errors.New("solver: broken predecessor chain")
)

// Result carries the outcome of one search.
type Result struct {
	// Path runs start to exit inclusive; empty when nothing was found.
	Path []grid.Cell

	// Found distinguishes "exit reached" from an exhausted or
	// truncated frontier.
	Found bool

	// KeysHeld is the key set carried when the exit was dequeued.
	// Always zero for the plain search.
	KeysHeld grid.KeySet

	// StatesExplored counts dequeued states.
	StatesExplored int

	// QueueMaxSize is the high-water mark of the frontier.
	QueueMaxSize int

	// Truncated is set when the exploration cap stopped the search
	// before the frontier drained.
	Truncated bool
}

// BFSPath returns a shortest 4-connected path from the start marker to
// the exit marker, treating every door as a wall. An empty path with a
// nil error means no route exists or a marker is absent; callers that
// need to tell those apart should check FindMarker first.
func BFSPath(g *grid.Grid) ([]grid.Cell, error) {
	res, err := runSearch(g, plainRules, 0)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// BFSPathWithKeys returns a shortest path from start to exit where a
// door may be crossed once the matching key has been collected.
// Reaching the exit with any key set counts as solved. The empty-path
// convention matches BFSPath.
func BFSPathWithKeys(g *grid.Grid) ([]grid.Cell, error) {
	res, err := runSearch(g, keyRules, 0)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// CountReachableKeys reports how many distinct key identities can be
// collected from the start when only walls block movement. Doors are
// ignored, so the count is an upper bound on what any door-respecting
// run can hold. Returns 0 when the start marker is absent.
func CountReachableKeys(g *grid.Grid) int {
	start, ok := g.FindMarker(grid.Start)
	if !ok {
		return 0
	}

	var held grid.KeySet
	visited := map[grid.Cell]bool{start: true}
	queue := []grid.Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if sym := g.At(current); grid.IsKey(sym) {
			held = held.With(grid.KeyIdentity(sym))
		}

		for _, d := range grid.Directions {
			next := current.Add(d)
			if !g.InBounds(next) || g.At(next) == grid.Wall || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	return held.Count()
}

// Solver runs bounded searches over a single grid. The package-level
// functions are the unbounded shorthand; use a Solver when exploration
// must be capped or when the search statistics matter.
type Solver struct {
	g         *grid.Grid
	maxStates int
}

// New creates a solver for the given grid.
func New(g *grid.Grid) *Solver {
	return &Solver{g: g}
}

// WithMaxStates caps how many states a search may dequeue before it
// gives up and reports truncation. Zero or negative means unbounded.
func (s *Solver) WithMaxStates(max int) *Solver {
	s.maxStates = max
	return s
}

// Solve runs the plain search with doors sealed.
func (s *Solver) Solve() (*Result, error) {
	return runSearch(s.g, plainRules, s.maxStates)
}

// SolveWithKeys runs the key-aware search.
func (s *Solver) SolveWithKeys() (*Result, error) {
	return runSearch(s.g, keyRules, s.maxStates)
}
