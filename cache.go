package imagebanner

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Cache stores rendered banners in an SQLite database, keyed by the content
// of the source image and the parameters used.
type Cache struct {
	db *sql.DB
}

// OpenCache opens, creating if necessary, the cache stored in file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS banner (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, max_width INTEGER NOT NULL, aspect_ratio REAL NOT NULL, invert INTEGER NOT NULL, resampling TEXT NOT NULL, colors INTEGER NOT NULL, text TEXT NOT NULL, UNIQUE(sha1, max_width, aspect_ratio, invert, resampling, colors))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func checksum(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

// Get returns the banner previously stored for the image content b rendered
// with p.
func (c *Cache) Get(b []byte, p Parameters) (string, bool, error) {
	var text string
	switch err := c.db.QueryRow("SELECT text FROM banner WHERE sha1 = ? AND max_width = ? AND aspect_ratio = ? AND invert = ? AND resampling = ? AND colors = ?", checksum(b), p.MaxWidth, p.AspectRatio, p.Invert, p.Resampling.String(), p.Colors).Scan(&text); err {
	case sql.ErrNoRows:
		return "", false, nil
	case nil:
		return text, true, nil
	default:
		return "", false, err
	}
}

// Put stores banner as the rendering of the image content b with p,
// replacing any existing entry.
func (c *Cache) Put(b []byte, p Parameters, banner string) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO banner (sha1, max_width, aspect_ratio, invert, resampling, colors, text) VALUES (?, ?, ?, ?, ?, ?, ?)", checksum(b), p.MaxWidth, p.AspectRatio, p.Invert, p.Resampling.String(), p.Colors, banner); err != nil {
		return err
	}
	return nil
}

// Len returns the number of stored banners.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM banner").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
