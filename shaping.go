package maplabel

import (
	"math"

	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/maplabel/text"
)

// OneEm is the size in layout units of one EM, the size at which glyph metrics are given.
const OneEm = text.OneEm

// ShapingYOffset is the offset from the top of a line to the baseline. It should be part of the font metadata, but glyphs are rasterized at a fixed size with this baseline.
const ShapingYOffset = -17.0

// PositionedGlyph is a code point placed on a line. Its position is the pen position at the baseline in layout units relative to the label's anchor.
type PositionedGlyph struct {
	Rune          rune
	X, Y          float64
	Vertical      bool
	FontStackHash atlas.FontStackHash
	Scale         float64
	Rect          atlas.Rect
	Metrics       atlas.GlyphMetrics
	ImageID       string // non-empty for images embedded in text
	SectionIndex  int
}

// PositionedLine is a line of positioned glyphs. LineOffset is the extra height of the line required by oversized images or scaled glyphs.
type PositionedLine struct {
	Glyphs     []PositionedGlyph
	LineOffset float64
}

// Shaping is the layout of a label's text in layout units relative to the anchor. The bounding box is only valid after shaping completes.
type Shaping struct {
	Lines                    []PositionedLine
	Top, Bottom, Left, Right float64
	WritingMode              WritingMode

	Verticalizable bool // has glyphs laid out upright in vertical writing mode
	IconsInText    bool
}

// NewShaping returns an empty shaping with its bounding box collapsed on the translation.
func NewShaping(x, y float64, writingMode WritingMode) Shaping {
	return Shaping{
		Top:         y,
		Bottom:      y,
		Left:        x,
		Right:       x,
		WritingMode: writingMode,
	}
}

// IsAnyLineNotEmpty returns true if at least one glyph was placed.
func (s Shaping) IsAnyLineNotEmpty() bool {
	for _, line := range s.Lines {
		if len(line.Glyphs) != 0 {
			return true
		}
	}
	return false
}

// Empty returns true if the shaping was never computed.
func (s Shaping) Empty() bool {
	return len(s.Lines) == 0
}

// GlyphCount returns the number of placed glyphs.
func (s Shaping) GlyphCount() int {
	n := 0
	for _, line := range s.Lines {
		n += len(line.Glyphs)
	}
	return n
}

// ShapeOptions are the evaluated layout properties used for shaping. Lengths are in layout units.
type ShapeOptions struct {
	MaxWidth    float64 // zero disables line breaking
	LineHeight  float64
	Anchor      SymbolAnchor
	Justify     TextJustify
	Spacing     float64 // letter spacing
	Translate   Point
	WritingMode WritingMode

	// LayoutTextSize is the text size used for line breaking, LayoutTextSizeAtBucketZoom is used for scaling images in text. The latter defaults to the former.
	LayoutTextSize             float64
	LayoutTextSizeAtBucketZoom float64

	AllowVerticalPlacement bool
}

// Shape lays out the text into lines. Lines are broken using the optimal line breaking algorithm, reordered for bidirectional text, justified, and aligned to the anchor. Code points without glyph or image are skipped.
func Shape(s *text.TaggedString, opts ShapeOptions, glyphs atlas.GlyphMap, positions atlas.GlyphPositions, images atlas.ImagePositions) Shaping {
	if opts.LayoutTextSize == 0.0 {
		panic(ErrZeroTextSize)
	}
	layoutTextSize := opts.LayoutTextSizeAtBucketZoom
	if layoutTextSize == 0.0 {
		layoutTextSize = opts.LayoutTextSize
	}

	breaks := text.Linebreak(s, opts.Spacing, opts.MaxWidth, glyphs, images, opts.LayoutTextSize)
	lines := text.BiDi{}.ProcessStyledText(s, breaks)

	shaping := NewShaping(opts.Translate.X, opts.Translate.Y, opts.WritingMode)
	shapeLines(&shaping, lines, opts, glyphs, positions, images, layoutTextSize)
	Logger().Debug("shape", "text", s.String(), "lines", len(shaping.Lines), "glyphs", shaping.GlyphCount(), "left", shaping.Left, "right", shaping.Right, "top", shaping.Top, "bottom", shaping.Bottom)
	return shaping
}

func isVerticalGlyph(r rune, writingMode WritingMode, allowVerticalPlacement bool) bool {
	if writingMode == Horizontal {
		return false
	} else if !allowVerticalPlacement {
		// glyphs without upright orientation stay rotated
		return text.HasUprightVerticalOrientation(r)
	}
	return !text.IsWhitespace(r) && !text.IsInComplexShapingScript(r)
}

// lookupGlyph returns the atlas rectangle and metrics of a glyph. A glyph without atlas position, such as a space, has an empty rectangle.
func lookupGlyph(section text.SectionOptions, r rune, glyphs atlas.GlyphMap, positions atlas.GlyphPositions) (atlas.Rect, atlas.GlyphMetrics, bool) {
	if pos, ok := positions.Lookup(section.FontStackHash, r); ok {
		return pos.Rect, pos.Metrics, true
	} else if glyph, ok := glyphs.Lookup(section.FontStackHash, r); ok {
		return atlas.Rect{}, glyph.Metrics, true
	}
	return atlas.Rect{}, atlas.GlyphMetrics{}, false
}

func shapeLines(shaping *Shaping, lines []*text.TaggedString, opts ShapeOptions, glyphs atlas.GlyphMap, positions atlas.GlyphPositions, images atlas.ImagePositions, layoutTextSize float64) {
	x, y := 0.0, ShapingYOffset
	maxLineLength, maxLineHeight := 0.0, 0.0
	justify := opts.Justify.fraction()

	shaping.Lines = make([]PositionedLine, 0, len(lines))
	for _, line := range lines {
		// collapse whitespace so it doesn't throw off justification
		line.Trim()

		lineMaxScale := line.MaxScale()
		maxLineOffset := (lineMaxScale - 1.0) * OneEm
		lineOffset := 0.0
		shaping.Lines = append(shaping.Lines, PositionedLine{})
		positioned := &shaping.Lines[len(shaping.Lines)-1]

		if line.Empty() {
			y += opts.LineHeight // still need a line feed after an empty line
			continue
		}

		for i := 0; i < line.Len(); i++ {
			r := line.Rune(i)
			sectionIndex := line.SectionIndex(i)
			section := line.Section(i)
			sectionScale := section.Scale
			if sectionScale == 0.0 {
				panic(ErrZeroScale)
			}
			vertical := isVerticalGlyph(r, opts.WritingMode, opts.AllowVerticalPlacement)

			var rect atlas.Rect
			var metrics atlas.GlyphMetrics
			var advance, baselineOffset float64
			verticalAdvance := OneEm
			if section.IsImage() {
				image, ok := images.Lookup(section.ImageID)
				if !ok {
					Logger().Warn("image in text not found", "image", section.ImageID)
					continue
				}
				shaping.IconsInText = true

				w, h := image.DisplaySize()
				metrics.Width = uint32(w)
				metrics.Height = uint32(h)
				metrics.Left = atlas.ImagePadding
				metrics.Top = -atlas.GlyphBorder
				metrics.Advance = metrics.Width
				if vertical {
					metrics.Advance = metrics.Height
				}
				rect = image.PaddedRect

				// images are scaled relative to the text size
				sectionScale = sectionScale * OneEm / layoutTextSize

				// align the bottom of the image with the baseline
				baselineOffset = maxLineOffset + (OneEm - h*sectionScale)

				advance = float64(metrics.Advance)
				verticalAdvance = advance

				// push down the line if the image is larger than one EM at the largest scale
				extent := h
				if vertical {
					extent = w
				}
				if offset := extent*sectionScale - OneEm*lineMaxScale; 0.0 < offset && lineOffset < offset {
					lineOffset = offset
				}
			} else {
				var ok bool
				rect, metrics, ok = lookupGlyph(section, r, glyphs, positions)
				if !ok {
					continue
				}
				advance = float64(metrics.Advance)

				// glyphs are laid out at one EM, so the baseline moves proportionally with the scale
				baselineOffset = (lineMaxScale - sectionScale) * OneEm
			}

			positioned.Glyphs = append(positioned.Glyphs, PositionedGlyph{
				Rune:          r,
				X:             x,
				Y:             y + baselineOffset,
				Vertical:      vertical,
				FontStackHash: section.FontStackHash,
				Scale:         sectionScale,
				Rect:          rect,
				Metrics:       metrics,
				ImageID:       section.ImageID,
				SectionIndex:  sectionIndex,
			})
			if vertical {
				x += verticalAdvance*sectionScale + opts.Spacing
				shaping.Verticalizable = true
			} else {
				x += advance*sectionScale + opts.Spacing
			}
		}

		// only justify if we placed at least one glyph
		if len(positioned.Glyphs) != 0 {
			lineLength := x - opts.Spacing // don't count trailing spacing
			maxLineLength = math.Max(maxLineLength, lineLength)
			justifyLine(positioned.Glyphs, justify, lineOffset)
		}

		lineHeight := opts.LineHeight*lineMaxScale + lineOffset
		x = 0.0
		y += lineHeight
		positioned.LineOffset = math.Max(lineOffset, maxLineOffset)
		maxLineHeight = math.Max(maxLineHeight, lineHeight)
	}

	hAlign, vAlign := AnchorAlignment(opts.Anchor)
	height := y - ShapingYOffset
	align(shaping, justify, hAlign, vAlign, maxLineLength, maxLineHeight, opts.LineHeight, height, len(lines))

	shaping.Top += -vAlign * height
	shaping.Bottom = shaping.Top + height
	shaping.Left += -hAlign * maxLineLength
	shaping.Right = shaping.Left + maxLineLength
}

// justifyLine shifts the glyphs so that the line is justified: left for 0, right for 1, and centered for 0.5.
func justifyLine(glyphs []PositionedGlyph, justify, lineOffset float64) {
	if justify == 0.0 && lineOffset == 0.0 {
		return
	}

	last := glyphs[len(glyphs)-1]
	lastAdvance := float64(last.Metrics.Advance) * last.Scale
	lineIndent := (last.X + lastAdvance) * justify
	for i := range glyphs {
		glyphs[i].X -= lineIndent
		glyphs[i].Y += lineOffset
	}
}

// align shifts all glyphs so that the block of lines is aligned to the anchor.
func align(shaping *Shaping, justify, hAlign, vAlign, maxLineLength, maxLineHeight, lineHeight, blockHeight float64, lineCount int) {
	shiftX := (justify - hAlign) * maxLineLength
	shiftY := (-vAlign*float64(lineCount) + 0.5) * lineHeight
	if maxLineHeight != lineHeight {
		shiftY = -blockHeight*vAlign - ShapingYOffset
	}

	for j := range shaping.Lines {
		glyphs := shaping.Lines[j].Glyphs
		for i := range glyphs {
			glyphs[i].X += shiftX
			glyphs[i].Y += shiftY
		}
	}
}
