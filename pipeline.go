package ppumaze

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ppumaze/level"
	"github.com/bodgit/ppumaze/tile"
)

// Builder runs the authoring steps that turn source images into the files
// loaded at startup.
type Builder struct {
	slicer Slicer
	logger *log.Logger
}

// NewBuilder returns a Builder. If db is nil spritesheets are sliced on
// every build.
func NewBuilder(db *AssetDB, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	b := &Builder{
		slicer: fileSlicer{},
		logger: logger,
	}
	if db != nil {
		b.slicer = db
	}
	return b
}

// Slicer returns the Slicer used for spritesheets.
func (b *Builder) Slicer() Slicer {
	return b.slicer
}

// EncodeLevel converts the layout image src into the layout file dst.
func (b *Builder) EncodeLevel(src, dst string, g level.Geometry) error {
	m, err := decodeImage(src)
	if err != nil {
		return err
	}

	l, err := level.Encode(m, g)
	if err != nil {
		return err
	}

	data, err := l.MarshalBinary()
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	b.logger.Printf("Wrote %d bytes to \"%s\"\n", len(data), dst)

	return nil
}

// Build encodes the layout in dir then loads every asset the same way the
// game does, writing the resulting tile table alongside as a CHR file. The
// loaded game is returned.
func (b *Builder) Build(dir string) (*Game, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := b.EncodeLevel(filepath.Join(dir, level.SourceFilename), filepath.Join(dir, level.Filename), level.DefaultGeometry); err != nil {
		return nil, err
	}

	g, err := load(dir, b.slicer, b.logger)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := tile.EncodeTable(buf, &g.TileTable, int(PlayerTile)+1); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(dir, TilesFilename))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err = f.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	b.logger.Printf("Wrote %d tiles to \"%s\"\n", int(PlayerTile)+1, f.Name())

	if db, ok := b.slicer.(*AssetDB); ok {
		hits, misses := db.Stats()
		b.logger.Printf("Sheet cache: %d hit(s), %d miss(es)\n", hits, misses)
	}

	return g, nil
}
