package ppumaze

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/bodgit/ppumaze/ppu"
	"github.com/bodgit/ppumaze/tile"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB caches sliced spritesheets keyed by the SHA-1 of the source
// image and the palette it was sliced with. It implements Slicer.
type AssetDB struct {
	db     *sql.DB
	hits   int
	misses int
}

// NewAssetDB opens or creates the cache database at file.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, tiles BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

// Stats returns the number of cache hits and misses so far.
func (db *AssetDB) Stats() (int, int) {
	return db.hits, db.misses
}

// Slice returns the tiles of the spritesheet in file, slicing and storing
// them if they are not already cached.
func (db *AssetDB) Slice(file string, p ppu.Palette) ([]ppu.Tile, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	for _, c := range p {
		h.Write([]byte{c.R, c.G, c.B, c.A})
	}
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	// Hash any trailing bytes the decoder did not consume
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	var b []byte
	switch err := db.db.QueryRow("SELECT tiles FROM sheet WHERE sha1 = ?", sha).Scan(&b); err {
	case sql.ErrNoRows:
		tiles, err := tile.SliceImage(m, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		buf := new(bytes.Buffer)
		if err := tile.Encode(buf, tiles); err != nil {
			return nil, err
		}
		if _, err := db.db.Exec("INSERT INTO sheet (sha1, tiles) VALUES (?, ?)", sha, buf.Bytes()); err != nil {
			return nil, err
		}
		db.misses++
		return tiles, nil
	case nil:
		db.hits++
		return tile.Decode(bytes.NewReader(b))
	default:
		return nil, err
	}
}
