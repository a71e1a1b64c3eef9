package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Cache is the sqlite-backed build cache the CLI driver consults before
// running the pipeline. Rendered IR is keyed by source path and content
// hash, so a hit is byte-identical to a fresh run.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	path        TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	run_id      TEXT NOT NULL,
	ir          TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (path, source_hash)
);`

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// HashSource returns the content key for a source text.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached IR for (path, sourceHash), or "" on a miss.
func (c *Cache) Lookup(path, sourceHash string) (string, bool, error) {
	var irText string
	row := c.db.QueryRow(
		`SELECT ir FROM builds WHERE path = ? AND source_hash = ?`,
		path, sourceHash,
	)
	switch err := row.Scan(&irText); err {
	case nil:
		return irText, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("cache: lookup: %w", err)
	}
}

// Store records the rendered IR of a successful run, replacing any entry
// with the same path and source hash. Entries stored for other source
// hashes of the same path are kept.
func (c *Cache) Store(path, sourceHash, runID, irText string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO builds (path, source_hash, run_id, ir, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		path, sourceHash, runID, irText, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache: store: %w", err)
	}
	return nil
}
