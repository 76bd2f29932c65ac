package ppumaze

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ppumaze/level"
	"github.com/bodgit/ppumaze/palette"
	"github.com/bodgit/ppumaze/ppu"
	"github.com/bodgit/ppumaze/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalettes = func() ppu.PaletteTable {
	var table ppu.PaletteTable
	for i := range table {
		for j := 1; j < ppu.ColorsPerPalette; j++ {
			table[i][j] = color.NRGBA{uint8(i * 30), uint8(j * 60), 0x80, 0xff}
		}
	}
	return table
}()

var testLogger = log.New(ioutil.Discard, "", 0)

func writePNG(t *testing.T, file string, m image.Image) {
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func fillImage(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

// Walls, in layout cells with 0, 0 at the bottom left
var testWalls = [][2]int{{0, 0}, {5, 5}, {6, 5}, {20, 20}, {20, 21}, {31, 29}}

func writeAssets(t *testing.T) string {
	dir, err := ioutil.TempDir("", "ppumaze")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	table := testPalettes
	writePNG(t, filepath.Join(dir, palette.Filename), palette.Image(&table))

	writePNG(t, filepath.Join(dir, GroundFilename), fillImage(8, 8, testPalettes[GroundPalette][2]))

	// Variant v has its top row pixels 0 to v set to color 3
	maze := fillImage(24, 24, testPalettes[UnlitPalette][1])
	for v := 0; v < int(level.NumVariants); v++ {
		cx, cy := v%3, v/3
		for x := 0; x <= v && x < 8; x++ {
			maze.SetNRGBA(cx*8+x, cy*8, testPalettes[UnlitPalette][3])
		}
	}
	writePNG(t, filepath.Join(dir, MazeFilename), maze)

	writePNG(t, filepath.Join(dir, PlayerFilename), fillImage(8, 8, testPalettes[PlayerPalette][2]))

	layout := image.NewNRGBA(image.Rect(0, 0, level.Width, level.Height))
	for _, w := range testWalls {
		layout.SetNRGBA(w[0], level.Height-1-w[1], color.NRGBA{0x00, 0x00, 0x00, 0xff})
	}
	writePNG(t, filepath.Join(dir, level.SourceFilename), layout)

	return dir
}

func TestBuildAndLoad(t *testing.T) {
	dir := writeAssets(t)

	built, err := NewBuilder(nil, testLogger).Build(dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, level.Filename))
	require.NoError(t, err)
	assert.Equal(t, int64(4*(8+240)), info.Size())

	b, err := ioutil.ReadFile(filepath.Join(dir, TilesFilename))
	require.NoError(t, err)
	tiles, err := tile.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	require.Len(t, tiles, int(PlayerTile)+1)
	assert.Equal(t, built.TileTable[PlayerTile], tiles[PlayerTile])

	g, err := Load(dir, testLogger)
	require.NoError(t, err)

	assert.Equal(t, built.Background, g.Background)
	assert.Equal(t, built.TileTable, g.TileTable)
	assert.Equal(t, testPalettes, g.PaletteTable)
	assert.Equal(t, testPalettes[GroundPalette][2], g.BackgroundColor)

	for v := 0; v < int(level.NumVariants); v++ {
		tl := g.TileTable[int(MazeTile)+v]
		assert.Equal(t, uint8(3), tl.ColorIndexAt(v%8, 7), "variant %d", v)
		assert.Equal(t, uint8(1), tl.ColorIndexAt(7, 6), "variant %d", v)
	}
	assert.Equal(t, uint8(2), g.TileTable[GroundTile].ColorIndexAt(3, 3))
	assert.Equal(t, uint8(2), g.TileTable[PlayerTile].ColorIndexAt(3, 3))

	for _, w := range testWalls {
		assert.True(t, g.Wall(w[0], w[1]))
		assert.Equal(t, UnlitPalette, g.Background.Palette(w[0], w[1]))
	}
	assert.False(t, g.Wall(1, 1))
	assert.Equal(t, GroundTile, g.Background.Tile(1, 1))

	v, ok := g.Layout.Variant(0, 0)
	require.True(t, ok)
	assert.Equal(t, level.CornerBottomLeft, v)
	assert.Equal(t, v.Tile(), g.Background.Tile(0, 0))
}

func TestBuildCache(t *testing.T) {
	dir := writeAssets(t)

	db, err := NewAssetDB(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer db.Close()

	b := NewBuilder(db, testLogger)

	first, err := b.Build(dir)
	require.NoError(t, err)
	hits, misses := db.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 3, misses)

	second, err := b.Build(dir)
	require.NoError(t, err)
	hits, misses = db.Stats()
	assert.Equal(t, 3, hits)
	assert.Equal(t, 3, misses)

	assert.Equal(t, first.TileTable, second.TileTable)

	// A different palette is a different cache entry
	_, err = db.Slice(filepath.Join(dir, GroundFilename), testPalettes[LitPalette])
	assert.ErrorIs(t, err, ppu.ErrColorNotInPalette)
	_, misses = db.Stats()
	assert.Equal(t, 3, misses)
}

func TestBuildBadLayout(t *testing.T) {
	dir := writeAssets(t)
	writePNG(t, filepath.Join(dir, level.SourceFilename), image.NewNRGBA(image.Rect(0, 0, 30, 30)))

	_, err := NewBuilder(nil, testLogger).Build(dir)
	assert.ErrorIs(t, err, ppu.ErrImageDimensionMismatch)
}

func TestLoadCorruptLayout(t *testing.T) {
	dir := writeAssets(t)
	_, err := NewBuilder(nil, testLogger).Build(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, level.Filename)
	b, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	copy(b[248:], "Q_LL")
	require.NoError(t, ioutil.WriteFile(file, b, 0644))

	_, err = Load(dir, testLogger)
	assert.ErrorIs(t, err, level.ErrChunkMagicMismatch)
	assert.Contains(t, err.Error(), "slot Q_LR")
}

func TestIlluminate(t *testing.T) {
	dir := writeAssets(t)
	_, err := NewBuilder(nil, testLogger).Build(dir)
	require.NoError(t, err)

	g, err := Load(dir, testLogger)
	require.NoError(t, err)

	q, ok := g.QuadrantAt(20, 20)
	require.True(t, ok)
	assert.Equal(t, level.UpperRight, q)
	assert.False(t, g.Lit(q))

	before := g.Background
	require.NoError(t, g.Illuminate(q))
	assert.True(t, g.Lit(q))

	assert.Equal(t, LitPalette, g.Background.Palette(20, 20))
	assert.Equal(t, LitPalette, g.Background.Palette(31, 29))
	assert.Equal(t, before.Tile(20, 20), g.Background.Tile(20, 20))
	assert.Equal(t, UnlitPalette, g.Background.Palette(5, 5))
	assert.Equal(t, GroundPalette, g.Background.Palette(21, 21))

	require.NoError(t, g.Illuminate(q))
	assert.Error(t, g.Illuminate(level.Quadrant(4)))
	assert.False(t, g.Lit(level.Quadrant(4)))
}

func TestPreview(t *testing.T) {
	dir := writeAssets(t)
	_, err := NewBuilder(nil, testLogger).Build(dir)
	require.NoError(t, err)

	g, err := Load(dir, testLogger)
	require.NoError(t, err)

	m := g.Preview()
	assert.Equal(t, image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight), m.Bounds())

	// Bottom right pixel of the wall at cell 0, 0
	assert.Equal(t, testPalettes[UnlitPalette][1], m.NRGBAAt(7, ppu.ScreenHeight-1))
	// Ground at cell 1, 0
	assert.Equal(t, testPalettes[GroundPalette][2], m.NRGBAAt(8, ppu.ScreenHeight-1))

	require.NoError(t, g.Illuminate(level.LowerLeft))
	m = g.Preview()
	assert.Equal(t, testPalettes[LitPalette][1], m.NRGBAAt(7, ppu.ScreenHeight-1))

	scaled := Scale(m, 2)
	assert.Equal(t, image.Rect(0, 0, 2*ppu.ScreenWidth, 2*ppu.ScreenHeight), scaled.Bounds())
	assert.Equal(t, color.NRGBAModel.Convert(m.At(7, ppu.ScreenHeight-1)), color.NRGBAModel.Convert(scaled.At(15, 2*ppu.ScreenHeight-1)))
	assert.Equal(t, m, Scale(m, 1))
}

func TestGameOrdering(t *testing.T) {
	g := New(testLogger)

	err := g.LoadSheet(0, GroundPalette, fillImage(8, 8, color.NRGBA{}))
	assert.Equal(t, errNoPalettes, err)

	assert.Equal(t, errNoLayout, g.Illuminate(level.LowerLeft))
	assert.False(t, g.Wall(0, 0))
	_, ok := g.QuadrantAt(0, 0)
	assert.False(t, ok)
	assert.Equal(t, image.Rectangle{}, g.Preview().Bounds())

	table := testPalettes
	require.NoError(t, g.LoadPalettes(palette.Image(&table)))
	require.NoError(t, g.LoadSheet(4, PlayerPalette, fillImage(16, 8, testPalettes[PlayerPalette][1])))
	assert.Equal(t, uint8(1), g.TileTable[5].ColorIndexAt(0, 0))

	err = g.LoadTiles(255, make([]ppu.Tile, 2))
	assert.ErrorIs(t, err, errTileRange)
}
