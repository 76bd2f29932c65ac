package ppumaze

import (
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ppumaze/level"
	"github.com/bodgit/ppumaze/palette"
	"github.com/bodgit/ppumaze/ppu"
	"github.com/bodgit/ppumaze/tile"
)

// Asset filenames relative to the asset directory.
const (
	GroundFilename = "ground.png"
	MazeFilename   = "maze.png"
	PlayerFilename = "bee-default.png"
	TilesFilename  = "tiles.chr"
)

// A Slicer turns a spritesheet file into tiles.
type Slicer interface {
	Slice(file string, p ppu.Palette) ([]ppu.Tile, error)
}

type fileSlicer struct{}

func (fileSlicer) Slice(file string, p ppu.Palette) ([]ppu.Tile, error) {
	m, err := decodeImage(file)
	if err != nil {
		return nil, err
	}
	tiles, err := tile.SliceImage(m, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return tiles, nil
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

type sheet struct {
	file    string
	index   uint8
	palette uint8
	count   int
}

var sheets = []sheet{
	{GroundFilename, GroundTile, GroundPalette, 1},
	{MazeFilename, MazeTile, UnlitPalette, int(level.NumVariants)},
	{PlayerFilename, PlayerTile, PlayerPalette, 1},
}

// loadTables fills the palette and tile tables from the images in dir.
func (g *Game) loadTables(dir string, s Slicer) error {
	m, err := decodeImage(filepath.Join(dir, palette.Filename))
	if err != nil {
		return err
	}
	if err := g.LoadPalettes(m); err != nil {
		return err
	}

	for _, sh := range sheets {
		tiles, err := s.Slice(filepath.Join(dir, sh.file), g.PaletteTable[sh.palette])
		if err != nil {
			return err
		}
		if len(tiles) != sh.count {
			return fmt.Errorf("ppumaze: %s has %d tile(s), want %d", sh.file, len(tiles), sh.count)
		}
		if err := g.LoadTiles(sh.index, tiles); err != nil {
			return err
		}
	}

	return nil
}

// Load builds the renderer tables from the assets in dir. The palette
// table is loaded first, then the tiles drawn with it and finally the
// layout which refers to both by index.
func Load(dir string, logger *log.Logger) (*Game, error) {
	return load(dir, fileSlicer{}, logger)
}

func load(dir string, s Slicer, logger *log.Logger) (*Game, error) {
	g := New(logger)
	if err := g.loadTables(dir, s); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, level.Filename))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := g.LoadLayout(f, level.DefaultGeometry); err != nil {
		return nil, fmt.Errorf("%s: %w", level.Filename, err)
	}

	return g, nil
}
