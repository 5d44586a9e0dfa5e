package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/font"
	"github.com/tdewolff/maplabel"
	"github.com/tdewolff/maplabel/atlas"
)

// atlasSize is the width and height of the glyph atlas in pixels.
const atlasSize = 2048

var fontStack = []string{"Default"}

func main() {
	root := argp.NewCmd(&Shape{}, "Map label shaping and collision toolkit")
	root.AddCmd(&OSM{}, "osm", "Lay out the labels of an OpenStreetMap extract")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		maplabel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// loadGlyphs measures the code points rs in the font file and packs them into a glyph atlas. Without a font file, Latin Modern Sans is used.
func loadGlyphs(filename string, index int, rs []rune) (atlas.GlyphMap, atlas.GlyphPositions, error) {
	b := lmsans10regular.TTF
	if filename != "" {
		var err error
		if b, err = os.ReadFile(filename); err != nil {
			return nil, nil, err
		}
	} else {
		filename = "Latin Modern Sans"
	}

	sfnt, err := font.ParseFont(b, index)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}

	glyphs, positions := atlas.GlyphMap{}, atlas.GlyphPositions{}
	packer := atlas.NewShelfPacker(atlasSize, atlasSize, 1)
	if err := atlas.LoadSFNT(sfnt, atlas.HashFontStack(fontStack), rs, packer, glyphs, positions); err != nil {
		return nil, nil, err
	}
	return glyphs, positions, nil
}
