// Package cache stores minified outputs keyed by a content hash, so
// unchanged inputs skip the whole pipeline on later runs. The store is
// a single SQLite database inside the cache directory.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dbFileName = "mangle.db"

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	key        TEXT PRIMARY KEY,
	output     BLOB NOT NULL,
	build_id   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Cache is an open artifact store. Every run gets a fresh build ID so
// cache rows can be traced back to the run that produced them.
type Cache struct {
	db      *sql.DB
	buildID string
}

// Open creates the cache directory and database if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache db: %w", err)
	}
	return &Cache{db: db, buildID: uuid.NewString()}, nil
}

// Key hashes everything that can change the output: the source bytes,
// the tool version, whether renaming runs, and the effective
// reserved-name set.
func Key(source []byte, version string, mangled bool, reserved []string) string {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(version))
	h.Write([]byte{0})
	if mangled {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	sorted := append([]string(nil), reserved...)
	sort.Strings(sorted)
	for _, name := range sorted {
		h.Write([]byte{0})
		h.Write([]byte(name))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for key, if present.
func (c *Cache) Get(key string) (string, bool, error) {
	var output []byte
	err := c.db.QueryRow(`SELECT output FROM artifacts WHERE key = ?`, key).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(output), true, nil
}

// Put stores output under key, replacing any previous entry.
func (c *Cache) Put(key, output string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO artifacts (key, output, build_id, created_at) VALUES (?, ?, ?, ?)`,
		key, []byte(output), c.buildID, time.Now().UTC(),
	)
	return err
}

// BuildID identifies this run in stored rows.
func (c *Cache) BuildID() string { return c.buildID }

func (c *Cache) Close() error { return c.db.Close() }
