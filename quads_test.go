package maplabel

import (
	"fmt"
	"testing"

	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/test"
)

func testQuadCorners(t *testing.T, quad SymbolQuad, tl, br Point) {
	t.Helper()
	test.Float(t, quad.TL.X, tl.X)
	test.Float(t, quad.TL.Y, tl.Y)
	test.Float(t, quad.TR.X, br.X)
	test.Float(t, quad.TR.Y, tl.Y)
	test.Float(t, quad.BL.X, tl.X)
	test.Float(t, quad.BL.Y, br.Y)
	test.Float(t, quad.BR.X, br.X)
	test.Float(t, quad.BR.Y, br.Y)
}

func TestShapeIcon(t *testing.T) {
	icon := ShapeIcon(testImage(18, 18), Point{-9.5, -9.5}, AnchorCenter)
	test.Float(t, icon.Top, -18.5)
	test.Float(t, icon.Right, -0.5)
	test.Float(t, icon.Bottom, -0.5)
	test.Float(t, icon.Left, -18.5)
	test.That(t, icon.CollisionPadding.IsZero())

	icon = ShapeIcon(testImage(18, 18), Point{}, AnchorTopLeft)
	test.Float(t, icon.Left, 0.0)
	test.Float(t, icon.Top, 0.0)
	icon = ShapeIcon(testImage(18, 18), Point{}, AnchorBottomRight)
	test.Float(t, icon.Right, 0.0)
	test.Float(t, icon.Bottom, 0.0)

	image := testImage(18, 18)
	image.PixelRatio = 2.0
	image.Content = &atlas.ImageContent{Left: 2.0, Top: 4.0, Right: 16.0, Bottom: 12.0}
	icon = ShapeIcon(image, Point{}, AnchorCenter)
	test.Float(t, icon.Right-icon.Left, 9.0)
	test.T(t, icon.CollisionPadding, Padding{1.0, 2.0, 1.0, 3.0})
}

func TestIconQuads(t *testing.T) {
	image := testImage(18, 18)
	icon := ShapeIcon(image, Point{-9.5, -9.5}, AnchorCenter)
	quads := IconQuads(icon, 0.0, ContentIconRGBA, false)
	test.T(t, len(quads), 1)
	testQuadCorners(t, quads[0], Point{-19.5, -19.5}, Point{0.5, 0.5})
	test.T(t, quads[0].Tex, atlas.Rect{X: 0, Y: 0, W: 20, H: 20})
	test.That(t, !quads[0].IsSDF)
	test.T(t, quads[0].WritingMode, NoWritingMode)

	quads = IconQuads(icon, 0.0, ContentIconSDF, false)
	test.That(t, quads[0].IsSDF)
}

func TestIconQuadsOddSize(t *testing.T) {
	icon := ShapeIcon(testImage(13, 9), Point{-6.5, -4.5}, AnchorCenter)
	quads := IconQuads(icon, 0.0, ContentIconRGBA, false)
	test.T(t, len(quads), 1)
	testQuadCorners(t, quads[0], Point{-14.0, -10.0}, Point{1.0, 1.0})
}

func TestIconQuadsRotate(t *testing.T) {
	icon := ShapeIcon(testImage(18, 18), Point{}, AnchorCenter)
	quads := IconQuads(icon, 90.0, ContentIconRGBA, false)
	test.T(t, len(quads), 1)

	// corners keep their winding after rotation
	test.Float(t, quads[0].TL.X, 10.0)
	test.Float(t, quads[0].TL.Y, -10.0)
	test.Float(t, quads[0].TR.X, 10.0)
	test.Float(t, quads[0].TR.Y, 10.0)
	test.Float(t, quads[0].BR.X, -10.0)
	test.Float(t, quads[0].BR.Y, 10.0)
	test.Float(t, quads[0].BL.X, -10.0)
	test.Float(t, quads[0].BL.Y, -10.0)
}

func TestFitIconToText(t *testing.T) {
	shaping := Shaping{
		Lines:  []PositionedLine{{Glyphs: []PositionedGlyph{{Rune: ' ', Scale: 1.0}}}},
		Top:    -10.0,
		Bottom: 30.0,
		Left:   -60.0,
		Right:  20.0,
	}

	var tests = []struct {
		fit       IconTextFit
		fontScale float64
		padding   [4]float64
		tl, br    Point
	}{
		{FitWidth, 1.0, [4]float64{}, Point{-64.4444444, 0.0}, Point{24.4444444, 20.0}},
		{FitWidth, 0.5, [4]float64{}, Point{-32.2222222, -5.0}, Point{12.2222222, 15.0}},
		{FitWidth, 0.5, [4]float64{5.0, 10.0, 5.0, 10.0}, Point{-43.3333333, -5.0}, Point{23.3333333, 15.0}},
		{FitHeight, 1.0, [4]float64{}, Point{-30.0, -12.2222222}, Point{-10.0, 32.2222222}},
		{FitHeight, 0.5, [4]float64{}, Point{-20.0, -6.1111111}, Point{0.0, 16.1111111}},
		{FitHeight, 0.5, [4]float64{5.0, 10.0, 5.0, 20.0}, Point{-20.0, -11.6666667}, Point{0.0, 21.6666667}},
		{FitBoth, 1.0, [4]float64{}, Point{-64.4444444, -12.2222222}, Point{24.4444444, 32.2222222}},
		{FitBoth, 0.5, [4]float64{}, Point{-32.2222222, -6.1111111}, Point{12.2222222, 16.1111111}},
		{FitBoth, 0.5, [4]float64{5.0, 10.0, 5.0, 10.0}, Point{-43.3333333, -11.6666667}, Point{23.3333333, 21.6666667}},
		{FitBoth, 0.5, [4]float64{0.0, 5.0, 10.0, 15.0}, Point{-48.3333333, -6.6666667}, Point{18.3333333, 26.6666667}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v/%v", tt.fit, tt.fontScale, tt.padding), func(t *testing.T) {
			icon := ShapeIcon(testImage(18, 18), Point{-9.5, -9.5}, AnchorCenter)
			icon.FitIconToText(shaping, tt.fit, tt.padding, Point{}, tt.fontScale)
			quads := IconQuads(icon, 0.0, ContentIconRGBA, true)
			test.T(t, len(quads), 1)
			test.That(t, quads[0].TL.Sub(tt.tl).Length() < 1e-6, "top-left", quads[0].TL, "!=", tt.tl)
			test.That(t, quads[0].BR.Sub(tt.br).Length() < 1e-6, "bottom-right", quads[0].BR, "!=", tt.br)
		})
	}

	icon := ShapeIcon(testImage(18, 18), Point{}, AnchorCenter)
	defer func() {
		test.T(t, recover(), ErrNoTextFit)
	}()
	icon.FitIconToText(shaping, FitNone, [4]float64{}, Point{}, 1.0)
}

func TestIconQuadsStretch(t *testing.T) {
	image := testImage(18, 18)
	image.StretchX = atlas.ImageStretches{{Start: 2.0, End: 16.0}}
	image.StretchY = atlas.ImageStretches{{Start: 2.0, End: 16.0}}
	icon := ShapeIcon(image, Point{}, AnchorCenter)
	icon.Left, icon.Right = -50.0, 50.0
	icon.Top, icon.Bottom = -20.0, 20.0

	quads := IconQuads(icon, 0.0, ContentIconRGBA, true)
	test.T(t, len(quads), 9)

	// the corners of the nine-slice stay at their pixel size
	corner := quads[0]
	test.Float(t, corner.TL.X, -50.0)
	test.Float(t, corner.TL.Y, -20.0)
	test.Float(t, corner.PixelOffsetTL.X, -1.0)
	test.Float(t, corner.PixelOffsetBR.X, 2.0)
	test.T(t, corner.Tex, atlas.Rect{X: 0, Y: 0, W: 3, H: 3})

	center := quads[4]
	test.Float(t, center.TL.X, -50.0)
	test.Float(t, center.BR.X, 50.0)
	test.T(t, center.Tex, atlas.Rect{X: 3, Y: 3, W: 14, H: 14})
	test.Float(t, center.MinFontScale.X, 4.0/100.0)
	test.Float(t, center.MinFontScale.Y, 4.0/40.0)

	// without fitting to text the icon is a single quad
	test.T(t, len(IconQuads(icon, 0.0, ContentIconRGBA, false)), 1)
}

func TestGlyphQuads(t *testing.T) {
	shaping := NewShaping(0.0, 0.0, Horizontal)
	shaping.Lines = []PositionedLine{{Glyphs: []PositionedGlyph{{
		Rune:         'a',
		Scale:        1.0,
		Rect:         atlas.Rect{X: 10, Y: 20, W: 24, H: 24},
		Metrics:      cjkMetrics,
		SectionIndex: 2,
	}, {
		Rune:    ' ',
		X:       21.0,
		Scale:   1.0,
		Metrics: cjkMetrics,
	}}}}

	quads := GlyphQuads(shaping, Point{}, QuadLayout{}, PointPlacement, nil, false)
	test.T(t, len(quads), 1)
	testQuadCorners(t, quads[0], Point{-2.0, 4.0}, Point{22.0, 28.0})
	test.T(t, quads[0].Tex, atlas.Rect{X: 10, Y: 20, W: 24, H: 24})
	test.That(t, quads[0].IsSDF)
	test.T(t, quads[0].SectionIndex, 2)
	test.T(t, quads[0].WritingMode, Horizontal)
	test.That(t, quads[0].GlyphOffset.IsZero())

	// text offset
	quads = GlyphQuads(shaping, Point{5.0, -3.0}, QuadLayout{}, PointPlacement, nil, false)
	testQuadCorners(t, quads[0], Point{3.0, 1.0}, Point{27.0, 25.0})

	// rotation
	quads = GlyphQuads(shaping, Point{}, QuadLayout{TextRotate: 90.0}, PointPlacement, nil, false)
	test.Float(t, quads[0].TL.X, -4.0)
	test.Float(t, quads[0].TL.Y, -2.0)

	// along a line the glyph is centered on its offset along the line
	quads = GlyphQuads(shaping, Point{}, QuadLayout{TextRotationAlignment: AlignMap}, LinePlacement, nil, false)
	test.Float(t, quads[0].GlyphOffset.X, 10.5)
	test.Float(t, quads[0].TL.X, -12.5)
	test.Float(t, quads[0].TL.Y, 4.0)
}

func TestGlyphQuadsImage(t *testing.T) {
	image := testImage(20, 20)
	image.PixelRatio = 2.0
	image.SDF = true
	images := atlas.ImagePositions{"pin": image}

	shaping := NewShaping(0.0, 0.0, Horizontal)
	shaping.Lines = []PositionedLine{{Glyphs: []PositionedGlyph{{
		Scale:   1.0,
		Rect:    image.PaddedRect,
		Metrics: atlas.GlyphMetrics{Width: 10, Height: 10, Left: atlas.ImagePadding, Top: -atlas.GlyphBorder, Advance: 10},
		ImageID: "pin",
	}}}}

	quads := GlyphQuads(shaping, Point{}, QuadLayout{}, PointPlacement, images, false)
	test.T(t, len(quads), 1)
	test.That(t, quads[0].IsSDF)
	test.Float(t, quads[0].TL.X, 0.5)
	test.Float(t, quads[0].TL.Y, 2.5)
	test.Float(t, quads[0].BR.X-quads[0].TL.X, 11.0)
}

func TestRotateVertical(t *testing.T) {
	p := Point{}
	tl, _, _, _ := rotateVertical(p, p, p, p, OneEm/2.0, false, Point{})
	test.Float(t, tl.X, -19.0)
	test.Float(t, tl.Y, 17.0)

	// the offset moves the rotated glyph
	tl, _, _, _ = rotateVertical(p, p, p, p, OneEm/2.0, false, Point{3.0, 4.0})
	test.Float(t, tl.X, -16.0)
	test.Float(t, tl.Y, 21.0)
}

func TestGlyphQuadsVertical(t *testing.T) {
	shaping := NewShaping(0.0, 0.0, Vertical)
	shaping.Lines = []PositionedLine{{Glyphs: []PositionedGlyph{{
		Rune:     '中',
		Vertical: true,
		Scale:    1.0,
		Rect:     atlas.Rect{W: 24, H: 24},
		Metrics:  atlas.GlyphMetrics{Width: 18, Height: 18, Left: 2, Top: -8, Advance: 24},
	}}}}

	horizontal := GlyphQuads(shaping, Point{}, QuadLayout{}, PointPlacement, nil, false)
	vertical := GlyphQuads(shaping, Point{}, QuadLayout{}, PointPlacement, nil, true)
	test.T(t, len(vertical), 1)
	test.T(t, vertical[0].WritingMode, Vertical)

	// the rotated quad has the same size but its top edge now runs upwards
	w := horizontal[0].TR.X - horizontal[0].TL.X
	test.Float(t, vertical[0].TL.Y-vertical[0].TR.Y, w)
	test.Float(t, vertical[0].TR.X-vertical[0].TL.X, 0.0)
}
