// Package archive provides SQLite-backed persistence for generated
// dungeons. Each record stores the parameters a dungeon was generated
// from alongside its rendered text form, so any archived dungeon can be
// reloaded, re-solved, or exported later without regenerating it.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dungeonkit/go-dungeon/grid"
	"github.com/dungeonkit/go-dungeon/validate"
)

// Store handles SQLite database operations for the dungeon archive.
type Store struct {
	db *sql.DB
}

// Record is one archived dungeon.
type Record struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	RoomRate  int       `json:"room_rate"`
	KeyPairs  int       `json:"key_pairs"`
	Grid      string    `json:"grid"`
	CreatedAt time.Time `json:"created_at"`
}

// Dungeon parses the record's stored text form back into a grid.
func (r *Record) Dungeon() (*grid.Grid, error) {
	return grid.Parse(r.Grid)
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dungeons (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		room_rate INTEGER NOT NULL DEFAULT 0,
		key_pairs INTEGER NOT NULL DEFAULT 0,
		grid TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_dungeons_seed ON dungeons(seed);
	CREATE INDEX IF NOT EXISTS idx_dungeons_created ON dungeons(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Save inserts a record. A missing ID is assigned a fresh UUID and a
// zero CreatedAt is set to the current time; both end up on rec.
func (s *Store) Save(rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO dungeons (id, seed, rows, cols, room_rate, key_pairs, grid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Rows, rec.Cols, rec.RoomRate, rec.KeyPairs, rec.Grid, rec.CreatedAt,
	)
	return err
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, rows, cols, room_rate, key_pairs, grid, created_at
		 FROM dungeons WHERE id = ?`, id,
	)

	var rec Record
	err := row.Scan(&rec.ID, &rec.Seed, &rec.Rows, &rec.Cols, &rec.RoomRate,
		&rec.KeyPairs, &rec.Grid, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BySeed retrieves all records generated from the given seed.
func (s *Store) BySeed(seed int64) ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, rows, cols, room_rate, key_pairs, grid, created_at
		 FROM dungeons WHERE seed = ? ORDER BY created_at DESC`, seed,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Recent returns the most recently archived records.
func (s *Store) Recent(limit int) ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, rows, cols, room_rate, key_pairs, grid, created_at
		 FROM dungeons ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.ID, &rec.Seed, &rec.Rows, &rec.Cols, &rec.RoomRate,
			&rec.KeyPairs, &rec.Grid, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Totals provides aggregated stats over the whole archive.
type Totals struct {
	Dungeons      int `json:"dungeons"`
	DistinctSeeds int `json:"distinct_seeds"`
	KeyedDungeons int `json:"keyed_dungeons"`
}

// GetTotals returns aggregate counts for the archive.
func (s *Store) GetTotals() (*Totals, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*),
		 COUNT(DISTINCT seed),
		 COALESCE(SUM(key_pairs > 0), 0)
		 FROM dungeons`,
	)

	var t Totals
	if err := row.Scan(&t.Dungeons, &t.DistinctSeeds, &t.KeyedDungeons); err != nil {
		return nil, err
	}
	return &t, nil
}

// ExportJSON exports a record together with its structural report.
func (s *Store) ExportJSON(id string) ([]byte, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	g, err := rec.Dungeon()
	if err != nil {
		return nil, err
	}

	export := map[string]any{
		"dungeon": rec,
		"report":  validate.CheckGrid(g),
	}

	return json.MarshalIndent(export, "", "  ")
}
