package atlas

import (
	"testing"

	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/tdewolff/font"
	"github.com/tdewolff/test"
)

func TestLoadSFNT(t *testing.T) {
	sfnt, err := font.ParseFont(lmsans10regular.TTF, 0)
	test.Error(t, err)

	hash := HashFontStack([]string{"Latin Modern Sans"})
	glyphs, positions := GlyphMap{}, GlyphPositions{}
	packer := NewShelfPacker(256, 256, 1)
	test.Error(t, LoadSFNT(sfnt, hash, []rune("aW 中"), packer, glyphs, positions))

	a, ok := glyphs.Lookup(hash, 'a')
	test.That(t, ok)
	w, ok := glyphs.Lookup(hash, 'W')
	test.That(t, ok)
	test.That(t, 0 < a.Metrics.Advance)
	test.That(t, a.Metrics.Advance < w.Metrics.Advance, "W is wider than a")
	test.That(t, a.Metrics.Advance <= uint32(GlyphSize))

	space, ok := positions.Lookup(hash, ' ')
	test.That(t, ok)
	test.That(t, space.Rect.Empty(), "whitespace has no bitmap")
	test.That(t, 0 < space.Metrics.Advance)

	// code points missing from the font are skipped
	_, ok = glyphs.Lookup(hash, '中')
	test.That(t, !ok)

	// loading again does not pack the glyphs twice
	test.Error(t, LoadSFNT(sfnt, hash, []rune("a"), packer, glyphs, positions))
	test.T(t, len(glyphs[hash]), 3)

	full := NewShelfPacker(4, 4, 0)
	test.T(t, LoadSFNT(sfnt, hash, []rune("M"), full, glyphs, positions), ErrAtlasFull)
}
