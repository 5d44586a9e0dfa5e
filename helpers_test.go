package maplabel

import (
	"math/rand/v2"
	"strings"

	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/maplabel/text"
)

var testFontStack = []string{"Test Regular"}

var testFontStackHash = atlas.HashFontStack(testFontStack)

// cjkMetrics are the metrics of a full-width glyph rasterized at one EM.
var cjkMetrics = atlas.GlyphMetrics{Width: 18, Height: 18, Left: 2, Top: -8, Advance: 21}

// testGlyphs returns glyph tables where every code point of s has the given metrics. Spaces have no atlas rectangle and line feeds and zero-width spaces have no glyph.
func testGlyphs(s string, metrics atlas.GlyphMetrics) (atlas.GlyphMap, atlas.GlyphPositions) {
	glyphs, positions := atlas.GlyphMap{}, atlas.GlyphPositions{}
	x := uint16(0)
	for _, r := range s {
		if r == '\n' || r == '\u200B' {
			continue
		}
		rect := atlas.Rect{}
		if r != ' ' {
			rect = atlas.Rect{
				X: x,
				W: uint16(metrics.Width) + 2*atlas.GlyphBorder,
				H: uint16(metrics.Height) + 2*atlas.GlyphBorder,
			}
			x += rect.W
		}
		atlas.Add(glyphs, positions, testFontStackHash, atlas.Glyph{ID: r, Metrics: metrics}, rect)
	}
	return glyphs, positions
}

func testString(s string) *text.TaggedString {
	return text.NewTaggedStringFromText(s, text.NewSectionOptions(1.0, testFontStack, nil))
}

// testImage returns an image of w by h display pixels at a pixel ratio of one.
func testImage(w, h uint16) atlas.ImagePosition {
	return atlas.ImagePosition{
		PixelRatio: 1.0,
		PaddedRect: atlas.Rect{W: w + 2*atlas.ImagePadding, H: h + 2*atlas.ImagePadding},
	}
}

// RandomText returns n words of random lowercase letters separated by spaces.
func RandomText(n int) string {
	sb := strings.Builder{}
	for i := 0; i < n; i++ {
		if i != 0 {
			sb.WriteByte(' ')
		}
		for j := 1 + rand.IntN(8); 0 < j; j-- {
			sb.WriteByte(byte('a' + rand.IntN(26)))
		}
	}
	return sb.String()
}
