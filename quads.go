package maplabel

import (
	"math"

	"github.com/tdewolff/maplabel/atlas"
)

// SymbolQuad is a textured quad of a glyph or icon. Corners are in layout units relative to the anchor, and the texture rectangle is in atlas pixels.
type SymbolQuad struct {
	TL, TR, BL, BR Point
	Tex            atlas.Rect

	// PixelOffsetTL and PixelOffsetBR correct the corners of stretched icons for the fixed parts of the image in display pixels.
	PixelOffsetTL, PixelOffsetBR Point

	// GlyphOffset is the position of the glyph center along the line for labels that follow a line.
	GlyphOffset  Point
	WritingMode  WritingMode
	IsSDF        bool
	SectionIndex int

	// MinFontScale is the scale below which the fixed parts of a stretched icon no longer fit.
	MinFontScale Point
}

// QuadLayout are the evaluated layout properties that affect glyph quads.
type QuadLayout struct {
	TextRotate            float64 // in degrees
	TextRotationAlignment Alignment
}

// GlyphQuads returns the quads of all glyphs of the shaping that have an atlas rectangle. Vertical glyphs are rotated to stay upright, and all quads are rotated by the text rotation.
func GlyphQuads(shaping Shaping, textOffset Point, layout QuadLayout, placement SymbolPlacement, images atlas.ImagePositions, allowVerticalPlacement bool) []SymbolQuad {
	alongLine := layout.TextRotationAlignment == AlignMap && placement != PointPlacement
	rotation := Identity.Rotate(layout.TextRotate)

	quads := []SymbolQuad{}
	for _, line := range shaping.Lines {
		for _, glyph := range line.Glyphs {
			if glyph.Rect.Empty() {
				continue
			}

			// the rectangles have a buffer that is not included in their size
			const glyphPadding = 1.0
			rectBuffer := atlas.GlyphBorder + glyphPadding
			pixelRatio := 1.0
			isSDF := true
			if glyph.ImageID != "" {
				if image, ok := images.Lookup(glyph.ImageID); ok {
					pixelRatio = image.PixelRatio
					rectBuffer = atlas.ImagePadding / pixelRatio
					isSDF = image.SDF
				}
			}

			halfAdvance := float64(glyph.Metrics.Advance) * glyph.Scale / 2.0
			rotateVerticalGlyph := (alongLine || allowVerticalPlacement) && glyph.Vertical

			// align images and scaled glyphs in the middle of a vertical line
			lineOffset := 0.0
			if allowVerticalPlacement && shaping.Verticalizable {
				if glyph.ImageID != "" {
					imageOffset := (OneEm - float64(glyph.Metrics.Width)*glyph.Scale) / 2.0
					lineOffset = line.LineOffset/2.0 + imageOffset
				} else {
					scaledGlyphOffset := (glyph.Scale - 1.0) * OneEm
					lineOffset = line.LineOffset/2.0 - scaledGlyphOffset
				}
			}

			glyphOffset := Point{}
			builtInOffset := Point{}
			if alongLine {
				glyphOffset = Point{glyph.X + halfAdvance, glyph.Y}
			} else {
				builtInOffset = Point{glyph.X + halfAdvance + textOffset.X, glyph.Y + textOffset.Y - lineOffset}
			}

			verticalizedLabelOffset := Point{}
			if rotateVerticalGlyph {
				// the quad is rotated first and then moved to the offset
				verticalizedLabelOffset = builtInOffset
				builtInOffset = Point{}
			}

			x1 := (float64(glyph.Metrics.Left)-rectBuffer)*glyph.Scale - halfAdvance + builtInOffset.X
			y1 := (-float64(glyph.Metrics.Top)-rectBuffer)*glyph.Scale + builtInOffset.Y
			x2 := x1 + float64(glyph.Rect.W)*glyph.Scale/pixelRatio
			y2 := y1 + float64(glyph.Rect.H)*glyph.Scale/pixelRatio

			tl := Point{x1, y1}
			tr := Point{x2, y1}
			bl := Point{x1, y2}
			br := Point{x2, y2}
			if rotateVerticalGlyph {
				tl, tr, bl, br = rotateVertical(tl, tr, bl, br, halfAdvance, glyph.ImageID != "", verticalizedLabelOffset)
			}
			if layout.TextRotate != 0.0 {
				tl, tr, bl, br = rotation.Dot(tl), rotation.Dot(tr), rotation.Dot(bl), rotation.Dot(br)
			}

			quads = append(quads, SymbolQuad{
				TL:           tl,
				TR:           tr,
				BL:           bl,
				BR:           br,
				Tex:          glyph.Rect,
				GlyphOffset:  glyphOffset,
				WritingMode:  shaping.WritingMode,
				IsSDF:        isSDF,
				SectionIndex: glyph.SectionIndex,
			})
		}
	}
	return quads
}

// rotateVertical rotates the corners of a glyph 90 degrees counter clockwise so that it stays upright in a label that is rotated 90 degrees clockwise. Glyphs are laid out in one EM square boxes below the midline, so rotating around the center of the left edge of that box aligns the glyph's center with the midline, after which the glyph is moved back to the right by the baseline offset. Half-width glyphs are pulled up to the center of the box.
func rotateVertical(tl, tr, bl, br Point, halfAdvance float64, isImage bool, offset Point) (Point, Point, Point, Point) {
	center := Point{-halfAdvance, halfAdvance - ShapingYOffset}
	xHalfWidthOffsetCorrection := OneEm/2.0 - halfAdvance
	yImageOffsetCorrection := 0.0
	if isImage {
		yImageOffsetCorrection = xHalfWidthOffsetCorrection
	}
	correction := Point{5.0 - ShapingYOffset - xHalfWidthOffsetCorrection, -yImageOffsetCorrection}.Add(offset)

	const verticalRotation = -math.Pi / 2.0
	tl = tl.Rot(verticalRotation, center).Add(correction)
	tr = tr.Rot(verticalRotation, center).Add(correction)
	bl = bl.Rot(verticalRotation, center).Add(correction)
	br = br.Rot(verticalRotation, center).Add(correction)
	return tl, tr, bl, br
}

////////////////////////////////////////////////////////////////

// cut is a position along one axis of an image, split into the pixels in fixed zones and the pixels in stretch zones before it.
type cut struct {
	fixed, stretch float64
}

func stretchSum(stretches atlas.ImageStretches) float64 {
	sum := 0.0
	for _, stretch := range stretches {
		sum += stretch.End - stretch.Start
	}
	return sum
}

// sumWithinRange returns the number of stretchable pixels in [min,max].
func sumWithinRange(stretches atlas.ImageStretches, min, max float64) float64 {
	sum := 0.0
	for _, stretch := range stretches {
		sum += math.Max(min, math.Min(max, stretch.End)) - math.Max(min, math.Min(max, stretch.Start))
	}
	return sum
}

// stretchZonesToCuts returns the cuts at the start and end of every stretch zone, bracketed by cuts in the image padding.
func stretchZonesToCuts(stretchZones atlas.ImageStretches, fixedSize, stretchSize float64) []cut {
	cuts := []cut{{-atlas.ImagePadding, 0.0}}
	for _, zone := range stretchZones {
		lastStretch := cuts[len(cuts)-1].stretch
		cuts = append(cuts, cut{zone.Start - lastStretch, lastStretch})
		cuts = append(cuts, cut{zone.Start - lastStretch, lastStretch + (zone.End - zone.Start)})
	}
	cuts = append(cuts, cut{fixedSize + atlas.ImagePadding, stretchSize})
	return cuts
}

func emOffset(stretchOffset, stretchSize, iconSize, iconOffset float64) float64 {
	return iconOffset + iconSize*stretchOffset/stretchSize
}

func pxOffset(fixedOffset, fixedSize, stretchOffset, stretchSize float64) float64 {
	return fixedOffset - fixedSize*stretchOffset/stretchSize
}

func toUint16(f float64) uint16 {
	if f <= 0.0 {
		return 0
	} else if math.MaxUint16 <= f {
		return math.MaxUint16
	}
	return uint16(f)
}

// iconStretch describes how the stretch and fixed zones of an image map onto the icon's bounds.
type iconStretch struct {
	icon          PositionedIcon
	width, height float64 // icon size in layout units

	stretchWidth, stretchHeight float64

	// offsets and sizes of the content area in stretchable and fixed pixels
	stretchOffsetX, stretchContentWidth  float64
	stretchOffsetY, stretchContentHeight float64
	fixedOffsetX, fixedContentWidth      float64
	fixedOffsetY, fixedContentHeight     float64

	rotation Matrix
	isSDF    bool
}

// makeBox returns the quad of the part of the icon between the given cuts.
func makeBox(s iconStretch, left, top, right, bottom cut) SymbolQuad {
	image := s.icon.Image
	leftEm := emOffset(left.stretch-s.stretchOffsetX, s.stretchContentWidth, s.width, s.icon.Left)
	leftPx := pxOffset(left.fixed-s.fixedOffsetX, s.fixedContentWidth, left.stretch, s.stretchWidth)
	topEm := emOffset(top.stretch-s.stretchOffsetY, s.stretchContentHeight, s.height, s.icon.Top)
	topPx := pxOffset(top.fixed-s.fixedOffsetY, s.fixedContentHeight, top.stretch, s.stretchHeight)
	rightEm := emOffset(right.stretch-s.stretchOffsetX, s.stretchContentWidth, s.width, s.icon.Left)
	rightPx := pxOffset(right.fixed-s.fixedOffsetX, s.fixedContentWidth, right.stretch, s.stretchWidth)
	bottomEm := emOffset(bottom.stretch-s.stretchOffsetY, s.stretchContentHeight, s.height, s.icon.Top)
	bottomPx := pxOffset(bottom.fixed-s.fixedOffsetY, s.fixedContentHeight, bottom.stretch, s.stretchHeight)

	tl := s.rotation.Dot(Point{leftEm, topEm})
	tr := s.rotation.Dot(Point{rightEm, topEm})
	br := s.rotation.Dot(Point{rightEm, bottomEm})
	bl := s.rotation.Dot(Point{leftEm, bottomEm})

	x1 := left.stretch + left.fixed
	x2 := right.stretch + right.fixed
	y1 := top.stretch + top.fixed
	y2 := bottom.stretch + bottom.fixed

	// the icon quad is padded, so the texture coordinates are padded as well
	tex := atlas.Rect{
		X: toUint16(float64(image.PaddedRect.X) + atlas.ImagePadding + x1),
		Y: toUint16(float64(image.PaddedRect.Y) + atlas.ImagePadding + y1),
		W: toUint16(x2 - x1),
		H: toUint16(y2 - y1),
	}

	return SymbolQuad{
		TL:            tl,
		TR:            tr,
		BL:            bl,
		BR:            br,
		Tex:           tex,
		PixelOffsetTL: Point{leftPx / image.PixelRatio, topPx / image.PixelRatio},
		PixelOffsetBR: Point{rightPx / image.PixelRatio, bottomPx / image.PixelRatio},
		WritingMode:   NoWritingMode,
		IsSDF:         s.isSDF,
		MinFontScale: Point{
			s.fixedContentWidth / image.PixelRatio / s.width,
			s.fixedContentHeight / image.PixelRatio / s.height,
		},
	}
}

// IconQuads returns the quads of the icon rotated by rotate degrees. When the icon is fitted to text and its image has stretch zones, the icon is cut into a quad for every fixed and stretchable part so that only the stretchable parts are stretched.
func IconQuads(icon PositionedIcon, rotate float64, iconType SymbolContent, hasIconTextFit bool) []SymbolQuad {
	image := icon.Image
	imageWidth := float64(image.PaddedRect.W) - 2*atlas.ImagePadding
	imageHeight := float64(image.PaddedRect.H) - 2*atlas.ImagePadding

	stretchX := image.StretchX
	if len(stretchX) == 0 {
		stretchX = atlas.ImageStretches{{Start: 0.0, End: imageWidth}}
	}
	stretchY := image.StretchY
	if len(stretchY) == 0 {
		stretchY = atlas.ImageStretches{{Start: 0.0, End: imageHeight}}
	}

	s := iconStretch{
		icon:          icon,
		width:         icon.Right - icon.Left,
		height:        icon.Bottom - icon.Top,
		stretchWidth:  stretchSum(stretchX),
		stretchHeight: stretchSum(stretchY),
		rotation:      Identity,
		isSDF:         iconType == ContentIconSDF,
	}
	fixedWidth := imageWidth - s.stretchWidth
	fixedHeight := imageHeight - s.stretchHeight
	s.stretchContentWidth, s.stretchContentHeight = s.stretchWidth, s.stretchHeight
	s.fixedContentWidth, s.fixedContentHeight = fixedWidth, fixedHeight

	if content := image.Content; hasIconTextFit && content != nil {
		s.stretchOffsetX = sumWithinRange(stretchX, 0.0, content.Left)
		s.stretchOffsetY = sumWithinRange(stretchY, 0.0, content.Top)
		s.stretchContentWidth = sumWithinRange(stretchX, content.Left, content.Right)
		s.stretchContentHeight = sumWithinRange(stretchY, content.Top, content.Bottom)
		s.fixedOffsetX = content.Left - s.stretchOffsetX
		s.fixedOffsetY = content.Top - s.stretchOffsetY
		s.fixedContentWidth = content.Right - content.Left - s.stretchContentWidth
		s.fixedContentHeight = content.Bottom - content.Top - s.stretchContentHeight
	}

	if rotate != 0.0 {
		s.rotation = Identity.Rotate(rotate)
	}

	if !hasIconTextFit || len(image.StretchX) == 0 && len(image.StretchY) == 0 {
		return []SymbolQuad{makeBox(s,
			cut{0.0, -1.0},
			cut{0.0, -1.0},
			cut{0.0, imageWidth + 1.0},
			cut{0.0, imageHeight + 1.0},
		)}
	}

	xCuts := stretchZonesToCuts(stretchX, fixedWidth, s.stretchWidth)
	yCuts := stretchZonesToCuts(stretchY, fixedHeight, s.stretchHeight)
	quads := make([]SymbolQuad, 0, (len(xCuts)-1)*(len(yCuts)-1))
	for i := 0; i+1 < len(xCuts); i++ {
		for j := 0; j+1 < len(yCuts); j++ {
			quads = append(quads, makeBox(s, xCuts[i], yCuts[j], xCuts[i+1], yCuts[j+1]))
		}
	}
	return quads
}
