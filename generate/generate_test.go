package generate

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dungeonkit/go-dungeon/grid"
	"github.com/dungeonkit/go-dungeon/solver"
	"github.com/dungeonkit/go-dungeon/validate"
)

// Helper: deterministic source for a given seed.
func rngFor(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// === Generation Tests ===

func TestDungeonDimensions(t *testing.T) {
	g := Dungeon(Params{Rows: 10, Cols: 14}, rngFor(1))
	if g.Height() != 11 || g.Width() != 15 {
		t.Errorf("dimensions = %dx%d, want even inputs bumped to 11x15", g.Height(), g.Width())
	}

	g = Dungeon(Params{Rows: 9, Cols: 9}, rngFor(1))
	if g.Height() != 9 || g.Width() != 9 {
		t.Errorf("dimensions = %dx%d, want odd inputs kept at 9x9", g.Height(), g.Width())
	}
}

func TestDungeonMinimumSize(t *testing.T) {
	g := Dungeon(Params{Rows: 1, Cols: 1}, rngFor(1))
	if g.Height() != 3 || g.Width() != 3 {
		t.Errorf("dimensions = %dx%d, want clamp to 3x3", g.Height(), g.Width())
	}
	if g.At(grid.Cell{Row: 1, Col: 1}) != grid.Start {
		t.Errorf("cell (1,1) = %q, want start marker", g.At(grid.Cell{Row: 1, Col: 1}))
	}
}

func TestDungeonContract(t *testing.T) {
	g := Dungeon(Params{Rows: 15, Cols: 21, RoomRate: 20}, rngFor(42))

	if n := g.Count(grid.Start); n != 1 {
		t.Errorf("start markers = %d, want 1", n)
	}
	if n := g.Count(grid.Exit); n != 1 {
		t.Errorf("exit markers = %d, want 1", n)
	}
	if s, _ := g.FindMarker(grid.Start); s != (grid.Cell{Row: 1, Col: 1}) {
		t.Errorf("start at %v, want (1,1)", s)
	}

	// Full wall border.
	lines := g.Lines()
	top, bottom := lines[0], lines[len(lines)-1]
	if strings.Trim(top, "#") != "" || strings.Trim(bottom, "#") != "" {
		t.Error("top or bottom border is breached")
	}
	for i, row := range lines {
		if row[0] != grid.Wall || row[len(row)-1] != grid.Wall {
			t.Errorf("row %d side border is breached", i)
		}
	}

	report := validate.CheckGrid(g)
	if !report.Valid {
		t.Errorf("structural check failed: %+v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", report.Warnings)
	}
}

func TestDungeonDeterministic(t *testing.T) {
	p := Params{Rows: 21, Cols: 21, RoomRate: 10}
	first := Dungeon(p, rngFor(7)).String()
	second := Dungeon(p, rngFor(7)).String()
	if first != second {
		t.Error("same seed produced different dungeons")
	}
	if third := Dungeon(p, rngFor(8)).String(); third == first {
		t.Error("different seeds produced identical dungeons")
	}
}

func TestDungeonSolvable(t *testing.T) {
	for _, rate := range []int{0, 10, 30} {
		for seed := int64(1); seed <= 5; seed++ {
			g := Dungeon(Params{Rows: 13, Cols: 17, RoomRate: rate}, rngFor(seed))
			path, err := solver.BFSPath(g)
			if err != nil {
				t.Fatalf("rate %d seed %d: %v", rate, seed, err)
			}
			if len(path) == 0 {
				t.Errorf("rate %d seed %d: generated dungeon is unsolvable:\n%s", rate, seed, g)
			}
			if err := validate.CheckPath(g, path); err != nil {
				t.Errorf("rate %d seed %d: %v", rate, seed, err)
			}
		}
	}
}

// === Key/Door Placement Tests ===

func TestPlaceKeyDoors(t *testing.T) {
	// RoomRate 0 keeps the maze a tree, so the single route through a
	// door cannot be bypassed.
	base := Dungeon(Params{Rows: 21, Cols: 21}, rngFor(3))
	g, placed := PlaceKeyDoors(base, 2, rngFor(3))

	if placed != 2 {
		t.Fatalf("placed = %d, want 2", placed)
	}
	for id := 0; id < placed; id++ {
		if n := g.Count(grid.KeySymbol(id)); n != 1 {
			t.Errorf("key %q count = %d, want 1", grid.KeySymbol(id), n)
		}
		if n := g.Count(grid.DoorSymbol(id)); n != 1 {
			t.Errorf("door %q count = %d, want 1", grid.DoorSymbol(id), n)
		}
	}

	plain, err := solver.BFSPath(g)
	if err != nil {
		t.Fatalf("BFSPath: %v", err)
	}
	if len(plain) != 0 {
		t.Error("plain search should be blocked by the placed doors")
	}

	keyed, err := solver.BFSPathWithKeys(g)
	if err != nil {
		t.Fatalf("BFSPathWithKeys: %v", err)
	}
	if len(keyed) == 0 {
		t.Fatal("key-aware search should still solve the dungeon")
	}
	if err := validate.CheckPath(g, keyed); err != nil {
		t.Errorf("validator rejected the path: %v", err)
	}

	// The input grid must stay untouched.
	if base.Count(grid.KeySymbol(0)) != 0 {
		t.Error("placement mutated the input grid")
	}
}

func TestPlaceKeyDoorsDeterministic(t *testing.T) {
	base := Dungeon(Params{Rows: 17, Cols: 17}, rngFor(11))
	first, n1 := PlaceKeyDoors(base, 3, rngFor(5))
	second, n2 := PlaceKeyDoors(base, 3, rngFor(5))
	if n1 != n2 || first.String() != second.String() {
		t.Error("same seed produced different placements")
	}
}

func TestPlaceKeyDoorsShortRoute(t *testing.T) {
	// Three interior cells support one pair at most.
	g := grid.New([]string{
		"#######",
		"#S   E#",
		"#######",
	})
	placedGrid, placed := PlaceKeyDoors(g, 4, rngFor(1))
	if placed != 1 {
		t.Errorf("placed = %d, want 1 on a 3-cell route", placed)
	}
	keyed, err := solver.BFSPathWithKeys(placedGrid)
	if err != nil || len(keyed) == 0 {
		t.Errorf("key-aware search failed after placement: %v", err)
	}

	tiny := grid.New([]string{
		"####",
		"#SE#",
		"####",
	})
	_, placed = PlaceKeyDoors(tiny, 1, rngFor(1))
	if placed != 0 {
		t.Errorf("placed = %d, want 0 when the route has no interior", placed)
	}
}

func TestPlaceKeyDoorsSkipsUsedIdentities(t *testing.T) {
	// Identity a is already on the grid, so the next pair uses b.
	g := grid.New([]string{
		"#######",
		"#S   E#",
		"#aA####",
	})
	placedGrid, placed := PlaceKeyDoors(g, 1, rngFor(1))
	if placed != 1 {
		t.Fatalf("placed = %d, want 1", placed)
	}
	if n := placedGrid.Count('b'); n != 1 {
		t.Errorf("key b count = %d, want 1", n)
	}
	if n := placedGrid.Count('B'); n != 1 {
		t.Errorf("door B count = %d, want 1", n)
	}
	if n := placedGrid.Count('a'); n != 1 {
		t.Errorf("existing key a count = %d, want it untouched", n)
	}
}

func TestPlaceKeyDoorsSkipsExitIdentity(t *testing.T) {
	// An 'E' door would read as a second exit, so asking for all six
	// identities yields five pairs and leaves e/E untouched.
	base := Dungeon(Params{Rows: 21, Cols: 21}, rngFor(3))
	g, placed := PlaceKeyDoors(base, grid.NumIdentities, rngFor(3))

	if placed != grid.NumIdentities-1 {
		t.Fatalf("placed = %d, want %d", placed, grid.NumIdentities-1)
	}
	if n := g.Count('e'); n != 0 {
		t.Errorf("key e count = %d, want 0", n)
	}
	if n := g.Count(grid.Exit); n != 1 {
		t.Errorf("exit markers = %d, want exactly 1", n)
	}
	for _, sym := range []byte{'a', 'b', 'c', 'd', 'f'} {
		if n := g.Count(sym); n != 1 {
			t.Errorf("key %q count = %d, want 1", sym, n)
		}
	}
	for _, sym := range []byte{'A', 'B', 'C', 'D', 'F'} {
		if n := g.Count(sym); n != 1 {
			t.Errorf("door %q count = %d, want 1", sym, n)
		}
	}

	keyed, err := solver.BFSPathWithKeys(g)
	if err != nil {
		t.Fatalf("BFSPathWithKeys: %v", err)
	}
	if len(keyed) == 0 {
		t.Fatal("key-aware search should solve the fully keyed dungeon")
	}
	if err := validate.CheckPath(g, keyed); err != nil {
		t.Errorf("validator rejected the path: %v", err)
	}
}

func TestPlaceKeyDoorsZeroPairs(t *testing.T) {
	g := Dungeon(DefaultParams(), rngFor(1))
	same, placed := PlaceKeyDoors(g, 0, rngFor(1))
	if placed != 0 || same != g {
		t.Error("zero pairs should return the input grid unchanged")
	}
}
