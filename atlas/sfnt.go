package atlas

import (
	"errors"
	"math"

	"github.com/tdewolff/font"
)

// GlyphSize is the size in pixels at which glyph metrics are expressed, one EM.
const GlyphSize = 24.0

// ErrAtlasFull is returned when the packer has no room for another glyph.
var ErrAtlasFull = errors.New("atlas: no room for glyph")

// LoadSFNT measures the code points rs in the font at GlyphSize and adds them to glyphs and positions under fontStack. Atlas rectangles are obtained from packer and include GlyphBorder on every side. Code points missing from the font are skipped.
func LoadSFNT(sfnt *font.SFNT, fontStack FontStackHash, rs []rune, packer *ShelfPacker, glyphs GlyphMap, positions GlyphPositions) error {
	f := GlyphSize / float64(sfnt.Head.UnitsPerEm)
	ascender := math.Round(float64(sfnt.Hhea.Ascender) * f)
	for _, r := range rs {
		if _, ok := glyphs.Lookup(fontStack, r); ok {
			continue
		}
		id := sfnt.GlyphIndex(r)
		if id == 0 && r != 0 {
			continue
		}

		metrics := GlyphMetrics{
			Advance: uint32(math.Round(float64(sfnt.GlyphAdvance(id)) * f)),
		}
		var rect Rect
		if xmin, ymin, xmax, ymax := sfnt.GlyphBounds(id); xmin < xmax && ymin < ymax {
			metrics.Width = uint32(math.Ceil(float64(xmax-xmin) * f))
			metrics.Height = uint32(math.Ceil(float64(ymax-ymin) * f))
			metrics.Left = int32(math.Floor(float64(xmin) * f))
			metrics.Top = int32(math.Ceil(float64(ymax)*f) - ascender)

			var ok bool
			rect, ok = packer.Pack(int(metrics.Width)+2*GlyphBorder, int(metrics.Height)+2*GlyphBorder)
			if !ok {
				return ErrAtlasFull
			}
		}
		Add(glyphs, positions, fontStack, Glyph{ID: r, Metrics: metrics}, rect)
	}
	return nil
}
