package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ppumaze"
	"github.com/bodgit/ppumaze/level"
	"github.com/bodgit/ppumaze/palette"
	"github.com/bodgit/ppumaze/ppu"
	"github.com/bodgit/ppumaze/tile"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ppumaze.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func encodePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, m)
}

func openDB(c *cli.Context) (*ppumaze.AssetDB, error) {
	if c.Bool("no-cache") {
		return nil, nil
	}
	return ppumaze.NewAssetDB(c.String("db"))
}

func main() {
	app := cli.NewApp()

	app.Name = "ppumaze"
	app.Usage = "PPU466 maze asset pipeline"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "assets",
			EnvVars: []string{"PPUMAZE_ASSETS"},
			Value:   filepath.Join(cwd, "dist", "assets"),
			Usage:   "path to asset directory",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PPUMAZE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to spritesheet cache database",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "do not use the spritesheet cache",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "build",
			Usage:       "Encode the level layout and check every asset loads",
			Description: "",
			Action: func(c *cli.Context) error {
				logger := newLogger(c)

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if db != nil {
					defer db.Close()
				}

				if _, err := ppumaze.NewBuilder(db, logger).Build(c.String("assets")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "level",
			Usage:       "Encode a level layout image",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Value: level.Width,
					Usage: "layout width in cells",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: level.Height,
					Usage: "layout height in cells",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, err := level.NewGeometry(c.Int("width"), c.Int("height"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b := ppumaze.NewBuilder(nil, newLogger(c))
				if err := b.EncodeLevel(c.Args().Get(0), c.Args().Get(1), g); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "tiles",
			Usage:       "Slice a spritesheet into CHR tile data",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "palette",
					Usage: "palette table index to slice with",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				index := c.Int("palette")
				if index < 0 || index >= ppu.NumPalettes {
					return cli.NewExitError(fmt.Errorf("palette index %d out of range", index), 1)
				}

				m, err := decodeImage(filepath.Join(c.String("assets"), palette.Filename))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				table, err := palette.Load(m)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var s ppumaze.Slicer
				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if db != nil {
					defer db.Close()
					s = db
				} else {
					s = ppumaze.NewBuilder(nil, logger).Slicer()
				}

				tiles, err := s.Slice(c.Args().Get(0), table[index])
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := tile.Encode(f, tiles); err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Printf("Wrote %d tiles to \"%s\"\n", len(tiles), f.Name())

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Suggest a four color palette for an image",
			Description: "Prints the palette and optionally writes the image remapped to it",
			ArgsUsage:   "SOURCE [DESTINATION]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := decodeImage(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				p := palette.Suggest(m)
				for i, col := range p {
					fmt.Printf("%d: #%02x%02x%02x%02x\n", i, col.R, col.G, col.B, col.A)
				}

				if c.NArg() > 1 {
					if err := encodePNG(c.Args().Get(1), palette.Remap(m, p)); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render the background as the game would show it",
			Description: "",
			ArgsUsage:   "DESTINATION",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  "lit",
					Usage: "quadrant to illuminate, may be repeated",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer scale factor",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, err := ppumaze.Load(c.String("assets"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, s := range c.StringSlice("lit") {
					q, err := level.ParseQuadrant(s)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := g.Illuminate(q); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				if err := encodePNG(c.Args().First(), ppumaze.Scale(g.Preview(), c.Int("scale"))); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
