package text

import (
	"math"

	"github.com/tdewolff/maplabel/atlas"
)

// OneEm is the size in layout units of one EM, the size at which glyph metrics are given.
const OneEm = 24.0

// IdeographicBreakPenalty discourages breaking between ideographs when the text carries explicit break hints (zero-width spaces) elsewhere.
var IdeographicBreakPenalty = 150.0

// Penalties for breaking at specific positions, negative penalties encourage breaks.
const (
	forcedBreakPenalty      = -10000.0
	parenthesisBreakPenalty = 50.0
)

// Algorithm is adapted from Donald E. Knuth and Michael F. Plass, "Breaking Paragraphs into Lines", 1981. Instead of stretching and shrinking glue, every line is compared to a target width so that lines of a label are balanced in length.

// potentialBreak is a node of the dynamic program. Nodes are stored in a flat slice and refer to their best predecessor by index.
type potentialBreak struct {
	index   int     // position in the text, the line ends before this code point
	x       float64 // accumulated width up to index
	prior   int     // index into the slice of breaks, or -1
	badness float64 // accumulated badness of the best chain ending here
}

// GlyphAdvance returns the advance in layout units of the code point at position i, including letter spacing. Missing glyphs and images have zero advance. Image advances are scaled from their display size relative to layoutTextSize.
func GlyphAdvance(s *TaggedString, i int, spacing float64, glyphs atlas.GlyphMap, images atlas.ImagePositions, layoutTextSize float64) float64 {
	section := s.Section(i)
	if section.IsImage() {
		image, ok := images.Lookup(section.ImageID)
		if !ok {
			return 0.0
		}
		if layoutTextSize == 0.0 {
			panic(ErrZeroTextSize)
		}
		w, _ := image.DisplaySize()
		return w*section.Scale*OneEm/layoutTextSize + spacing
	}

	glyph, ok := glyphs.Lookup(section.FontStackHash, s.Rune(i))
	if !ok {
		return 0.0
	}
	return float64(glyph.Metrics.Advance)*section.Scale + spacing
}

// lineBadness returns the badness of a line of the given width. Lines that are too long are penalized twice as much as lines that are too short, but only for the last line.
func lineBadness(width, targetWidth, penalty float64, isLastBreak bool) float64 {
	raggedness := (width - targetWidth) * (width - targetWidth)
	if isLastBreak {
		// favour shorter last lines
		if width < targetWidth {
			return raggedness / 2.0
		}
		return raggedness * 2.0
	} else if penalty < 0.0 {
		return raggedness - penalty*penalty
	}
	return raggedness + penalty*penalty
}

// breakPenalty returns the penalty of breaking between codePoint and nextCodePoint.
func breakPenalty(codePoint, nextCodePoint rune, penalizableIdeographicBreak bool) float64 {
	penalty := 0.0
	if codePoint == '\n' {
		penalty += forcedBreakPenalty
	}
	if codePoint == '(' || codePoint == '\uFF08' {
		// don't leave an opening parenthesis at the end of a line
		penalty += parenthesisBreakPenalty
	}
	if nextCodePoint == ')' || nextCodePoint == '\uFF09' {
		// don't start a line with a closing parenthesis
		penalty += parenthesisBreakPenalty
	}
	if penalizableIdeographicBreak {
		penalty += IdeographicBreakPenalty
	}
	return penalty
}

// evaluateBreak returns the break at index with the predecessor that minimizes the accumulated badness. Later predecessors win ties.
func evaluateBreak(index int, x, targetWidth float64, breaks []potentialBreak, penalty float64, isLastBreak bool) potentialBreak {
	best := potentialBreak{index, x, -1, lineBadness(x, targetWidth, penalty, isLastBreak)}
	for j, prior := range breaks {
		badness := lineBadness(x-prior.x, targetWidth, penalty, isLastBreak) + prior.badness
		if badness <= best.badness {
			best.prior = j
			best.badness = badness
		}
	}
	return best
}

// Linebreak returns the positions at which to break the text so that its lines are about equally long and not longer than maxWidth where possible. The end of the text is not included. It returns nil when maxWidth is zero or the text is empty, in which case the text is laid out as a single line.
func Linebreak(s *TaggedString, spacing, maxWidth float64, glyphs atlas.GlyphMap, images atlas.ImagePositions, layoutTextSize float64) []int {
	if maxWidth == 0.0 || s.Empty() {
		return nil
	}

	n := s.Len()
	totalWidth := 0.0
	for i := 0; i < n; i++ {
		totalWidth += GlyphAdvance(s, i, spacing, glyphs, images, layoutTextSize)
	}
	lineCount := math.Max(1.0, math.Ceil(totalWidth/maxWidth))
	targetWidth := totalWidth / lineCount

	hasServerSuggestedBreaks := s.HasServerSuggestedBreaks()

	breaks := []potentialBreak{}
	x := 0.0
	for i := 0; i < n; i++ {
		section := s.Section(i)
		r := s.Rune(i)
		if !IsWhitespace(r) {
			x += GlyphAdvance(s, i, spacing, glyphs, images, layoutTextSize)
		}

		// never break after the last code point
		if i < n-1 {
			ideographicBreak := AllowsIdeographicBreaking(r)
			if section.IsImage() || ideographicBreak || AllowsWordBreaking(r) {
				penalizableIdeographicBreak := ideographicBreak && hasServerSuggestedBreaks
				penalty := breakPenalty(r, s.Rune(i+1), penalizableIdeographicBreak)
				breaks = append(breaks, evaluateBreak(i+1, x, targetWidth, breaks, penalty, false))
			}
		}
	}
	last := evaluateBreak(n, x, targetWidth, breaks, 0.0, true)
	Logger().Debug("linebreak", "text", s.String(), "targetWidth", targetWidth, "badness", last.badness)

	count := 0
	for j := last.prior; j != -1; j = breaks[j].prior {
		count++
	}
	positions := make([]int, count)
	for j, k := last.prior, count-1; j != -1; j, k = breaks[j].prior, k-1 {
		positions[k] = breaks[j].index
	}
	return positions
}
