package archive

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dungeonkit/go-dungeon/validate"
)

const corridorText = "#######\n#S   E#\n#######\n"

// Helper: open a fresh archive in a temporary directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)

	rec := &Record{Seed: 42, Rows: 3, Cols: 7, Grid: corridorText}
	require.NoError(t, store.Save(rec))
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := &Record{
		Seed:     99,
		Rows:     3,
		Cols:     7,
		RoomRate: 10,
		KeyPairs: 2,
		Grid:     corridorText,
	}
	require.NoError(t, store.Save(rec))

	got, err := store.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.Seed, got.Seed)
	require.Equal(t, rec.Rows, got.Rows)
	require.Equal(t, rec.Cols, got.Cols)
	require.Equal(t, rec.RoomRate, got.RoomRate)
	require.Equal(t, rec.KeyPairs, got.KeyPairs)
	require.Equal(t, rec.Grid, got.Grid)
	require.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Second)

	g, err := got.Dungeon()
	require.NoError(t, err)
	require.Equal(t, corridorText, g.String())
}

func TestGetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("no-such-id")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBySeed(t *testing.T) {
	store := newTestStore(t)

	for _, seed := range []int64{7, 7, 8} {
		require.NoError(t, store.Save(&Record{Seed: seed, Rows: 3, Cols: 7, Grid: corridorText}))
	}

	records, err := store.BySeed(7)
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = store.BySeed(9)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRecentOrdering(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		rec := &Record{
			Seed:      int64(i),
			Rows:      3,
			Cols:      7,
			Grid:      corridorText,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Save(rec))
		ids = append(ids, rec.ID)
	}

	records, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, ids[2], records[0].ID)
	require.Equal(t, ids[1], records[1].ID)
}

func TestGetTotals(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.GetTotals()
	require.NoError(t, err)
	require.Equal(t, 0, totals.Dungeons)
	require.Equal(t, 0, totals.DistinctSeeds)
	require.Equal(t, 0, totals.KeyedDungeons)

	require.NoError(t, store.Save(&Record{Seed: 1, Rows: 3, Cols: 7, Grid: corridorText}))
	require.NoError(t, store.Save(&Record{Seed: 1, Rows: 3, Cols: 7, KeyPairs: 2, Grid: corridorText}))
	require.NoError(t, store.Save(&Record{Seed: 2, Rows: 3, Cols: 7, Grid: corridorText}))

	totals, err = store.GetTotals()
	require.NoError(t, err)
	require.Equal(t, 3, totals.Dungeons)
	require.Equal(t, 2, totals.DistinctSeeds)
	require.Equal(t, 1, totals.KeyedDungeons)
}

func TestExportJSON(t *testing.T) {
	store := newTestStore(t)

	rec := &Record{Seed: 5, Rows: 3, Cols: 7, Grid: corridorText}
	require.NoError(t, store.Save(rec))

	data, err := store.ExportJSON(rec.ID)
	require.NoError(t, err)

	var export struct {
		Dungeon Record          `json:"dungeon"`
		Report  validate.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &export))
	require.Equal(t, rec.ID, export.Dungeon.ID)
	require.Equal(t, corridorText, export.Dungeon.Grid)
	require.True(t, export.Report.Valid)
	require.Equal(t, 3, export.Report.Summary.Rows)
	require.Equal(t, 7, export.Report.Summary.Cols)
}

func TestDBAdHocAggregate(t *testing.T) {
	store := newTestStore(t)
	for _, seed := range []int64{1, 2, 3} {
		require.NoError(t, store.Save(&Record{Seed: seed, Rows: 3, Cols: 7, Grid: corridorText}))
	}

	// The raw connection serves grouped queries the store has no
	// method for, like the CLI's per-size breakdown.
	rows, err := store.DB().Query(
		`SELECT rows || 'x' || cols AS size, COUNT(*) AS count FROM dungeons GROUP BY size`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var size string
	var count int
	require.NoError(t, rows.Scan(&size, &count))
	require.Equal(t, "3x7", size)
	require.Equal(t, 3, count)
	require.False(t, rows.Next())
	require.NoError(t, rows.Err())
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	store, err := Open(path)
	require.NoError(t, err)
	rec := &Record{Seed: 77, Rows: 3, Cols: 7, Grid: corridorText}
	require.NoError(t, store.Save(rec))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Seed, got.Seed)
}
