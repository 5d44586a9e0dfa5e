package text

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/test"
)

var testFontStack = []string{"Test Regular"}

// monospace returns glyphs of the given advance for all code points in s, except for line feeds.
func monospace(s string, advance uint32) atlas.GlyphMap {
	hash := atlas.HashFontStack(testFontStack)
	glyphs := atlas.GlyphMap{hash: atlas.Glyphs{}}
	for _, r := range s {
		if r != '\n' && r != '\u200B' {
			glyphs[hash][r] = atlas.Glyph{ID: r, Metrics: atlas.GlyphMetrics{Advance: advance}}
		}
	}
	return glyphs
}

func TestLinebreak(t *testing.T) {
	var tests = []struct {
		text     string
		maxWidth float64
		breaks   []int
	}{
		{"ab", 1000.0, []int{}},
		{"ab", 0.0, nil},
		{"", 1000.0, nil},
		{"hello world foo", 60.0, []int{6, 12}},
		{"ab\ncd", 1000.0, []int{3}},
		{"abc (de) fgh", 60.0, []int{9}},
		{"abcdefghijklmnop", 20.0, []int{}}, // no break opportunities
		{"the quick brown fox jumps over the lazy dog", 200.0, []int{16, 31}},
		{"the quick brown fox jumps over the lazy dog", 100.0, []int{10, 20, 31}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v", tt.text, tt.maxWidth), func(t *testing.T) {
			s := NewTaggedStringFromText(tt.text, NewSectionOptions(1.0, testFontStack, nil))
			breaks := Linebreak(s, 0.0, tt.maxWidth, monospace(tt.text, 10), nil, 16.0)
			test.T(t, breaks, tt.breaks)
		})
	}
}

func TestLinebreakZeroWidthSpace(t *testing.T) {
	var tests = []struct {
		text   string
		chars  int
		breaks []int
	}{
		{"中中\u200B中中\u200B中中\u200B中中中中中中\u200B中中", 5, []int{9, 16}},
		{"中中\u200B中", 1, []int{3}},
		{"中中\u200B", 2, []int{}},
		{"\u200B\u200B\u200B\u200B\u200B", 1, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := NewTaggedStringFromText(tt.text, NewSectionOptions(1.0, testFontStack, nil))
			breaks := Linebreak(s, 0.0, float64(tt.chars)*OneEm, monospace(tt.text, 21), nil, 16.0)
			test.T(t, breaks, tt.breaks)
		})
	}
}

func TestLinebreakDeterministic(t *testing.T) {
	str := "the quick brown fox jumps over the lazy dog"
	s := NewTaggedStringFromText(str, NewSectionOptions(1.0, testFontStack, nil))
	glyphs := monospace(str, 10)
	test.T(t, Linebreak(s, 0.0, 80.0, glyphs, nil, 16.0), Linebreak(s, 0.0, 80.0, glyphs, nil, 16.0))
}

func TestLinebreakMonotonic(t *testing.T) {
	str := strings.Repeat("lorem ipsum (dolor) sit-amet ", 3)
	s := NewTaggedStringFromText(str, NewSectionOptions(1.0, testFontStack, nil))
	glyphs := monospace(str, 10)

	prev := 0
	for maxWidth := 1000.0; 10.0 <= maxWidth; maxWidth -= 10.0 {
		breaks := Linebreak(s, 0.0, maxWidth, glyphs, nil, 16.0)
		test.That(t, prev <= len(breaks), fmt.Sprintf("%d lines for width %v", len(breaks)+1, maxWidth))
		prev = len(breaks)
	}
}

func TestGlyphAdvance(t *testing.T) {
	images := atlas.ImagePositions{
		"icon": {PixelRatio: 1.0, PaddedRect: atlas.Rect{X: 0, Y: 0, W: 22, H: 22}},
	}

	s := NewTaggedString()
	s.AddTextSection("a b", 1.5, testFontStack, nil)
	s.AddImageSection("icon")
	s.AddImageSection("missing")
	glyphs := monospace("ab", 10)

	test.Float(t, GlyphAdvance(s, 0, 1.0, glyphs, images, 12.0), 16.0)
	test.Float(t, GlyphAdvance(s, 1, 1.0, glyphs, images, 12.0), 0.0) // space has no glyph
	test.Float(t, GlyphAdvance(s, 3, 1.0, glyphs, images, 12.0), 41.0)
	test.Float(t, GlyphAdvance(s, 4, 1.0, glyphs, images, 12.0), 0.0)
}

func TestBreakPenalty(t *testing.T) {
	test.Float(t, breakPenalty('\n', 'a', false), -10000.0)
	test.Float(t, breakPenalty('(', 'a', false), 50.0)
	test.Float(t, breakPenalty('a', '\uFF09', false), 50.0)
	test.Float(t, breakPenalty('(', ')', true), 250.0)
	test.Float(t, lineBadness(10.0, 20.0, 0.0, true), 50.0)
	test.Float(t, lineBadness(30.0, 20.0, 0.0, true), 200.0)
	test.Float(t, lineBadness(30.0, 20.0, -10.0, false), 0.0)
	test.Float(t, lineBadness(30.0, 20.0, 10.0, false), 200.0)
}
