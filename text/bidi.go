package text

import (
	"sort"

	"golang.org/x/text/unicode/bidi"
)

// BiDi splits text into lines and reorders every line from logical to visual order, so that mixed left-to-right and right-to-left text is displayed correctly.
type BiDi struct{}

// ProcessStyledText returns the lines of s broken at the given positions and in visual order. Sections move along with their code points. The length of s is always a break position.
func (BiDi) ProcessStyledText(s *TaggedString, breaks []int) []*TaggedString {
	positions := make([]int, 0, len(breaks)+1)
	for _, pos := range breaks {
		if pos <= s.Len() {
			positions = append(positions, pos)
		}
	}
	positions = append(positions, s.Len())
	sort.Ints(positions)

	lines := []*TaggedString{}
	start := 0
	for i, pos := range positions {
		if 0 < i && pos == positions[i-1] {
			continue
		}
		line := s.Substring(start, pos)
		line.reorder()
		lines = append(lines, line)
		start = pos
	}
	return lines
}

// ProcessText returns the lines of text broken at the given positions and in visual order.
func (b BiDi) ProcessText(text string, breaks []int) []string {
	lines := b.ProcessStyledText(NewTaggedStringFromText(text, unstyled), breaks)
	strs := make([]string, len(lines))
	for i, line := range lines {
		strs[i] = line.String()
	}
	return strs
}

// hasRightToLeft returns true if any code point has a strong right-to-left direction.
func hasRightToLeft(rs []rune) bool {
	for _, r := range rs {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL, bidi.RLE, bidi.RLO, bidi.RLI:
			return true
		}
	}
	return false
}

// reorder puts the code points in visual order.
func (s *TaggedString) reorder() {
	if !hasRightToLeft(s.runes) {
		return
	}
	mapV2L := visualOrder(s.runes)
	if len(mapV2L) != len(s.runes) {
		Logger().Warn("bidi reordering changed the text length, keeping logical order", "text", string(s.runes))
		return
	}

	runes := make([]rune, len(s.runes))
	indices := make([]int, len(s.indices))
	for i, pos := range mapV2L {
		runes[i] = s.runes[pos]
		indices[i] = s.indices[pos]
	}
	s.runes, s.indices = runes, indices
}
