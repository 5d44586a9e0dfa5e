package atlas

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// GlyphBorder is the number of pixels of SDF buffer around every glyph bitmap in the atlas.
const GlyphBorder = 3

// FontStackHash identifies a font stack, a list of font names in fallback order.
type FontStackHash uint64

// HashFontStack returns the hash of the font stack. The hash is stable between runs.
func HashFontStack(fontStack []string) FontStackHash {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(fontStack, ",")))
	return FontStackHash(h.Sum64())
}

// Rect is a rectangle in the atlas texture, in pixels.
type Rect struct {
	X, Y, W, H uint16
}

// Empty returns true when the rectangle has no area, as is the case for whitespace glyphs.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d; %d]--[%d; %d]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// GlyphMetrics are the metrics of a rasterized glyph at the reference size of one EM (24px).
type GlyphMetrics struct {
	Width, Height uint32
	Left, Top     int32
	Advance       uint32
}

// Glyph is a glyph with its metrics, keyed by code point.
type Glyph struct {
	ID      rune
	Metrics GlyphMetrics
}

// Glyphs maps code points to glyphs of a single font stack.
type Glyphs map[rune]Glyph

// GlyphMap maps font stacks to their glyphs. It is used to measure advances when breaking lines.
type GlyphMap map[FontStackHash]Glyphs

// Lookup returns the glyph for code point r in the font stack.
func (m GlyphMap) Lookup(fontStack FontStackHash, r rune) (Glyph, bool) {
	glyphs, ok := m[fontStack]
	if !ok {
		return Glyph{}, false
	}
	glyph, ok := glyphs[r]
	return glyph, ok
}

// GlyphPosition is the location of a glyph in the atlas texture together with its metrics.
type GlyphPosition struct {
	Rect    Rect
	Metrics GlyphMetrics
}

// GlyphPositions maps font stacks to the atlas positions of their glyphs.
type GlyphPositions map[FontStackHash]map[rune]GlyphPosition

// Lookup returns the atlas position for code point r in the font stack.
func (m GlyphPositions) Lookup(fontStack FontStackHash, r rune) (GlyphPosition, bool) {
	positions, ok := m[fontStack]
	if !ok {
		return GlyphPosition{}, false
	}
	pos, ok := positions[r]
	return pos, ok
}

// Add inserts a glyph at the given atlas rectangle into both tables.
func Add(glyphs GlyphMap, positions GlyphPositions, fontStack FontStackHash, glyph Glyph, rect Rect) {
	if glyphs[fontStack] == nil {
		glyphs[fontStack] = Glyphs{}
	}
	glyphs[fontStack][glyph.ID] = glyph
	if positions[fontStack] == nil {
		positions[fontStack] = map[rune]GlyphPosition{}
	}
	positions[fontStack][glyph.ID] = GlyphPosition{
		Rect:    rect,
		Metrics: glyph.Metrics,
	}
}
