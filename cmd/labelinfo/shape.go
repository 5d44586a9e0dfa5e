package main

import (
	"fmt"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/maplabel"
	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/maplabel/text"
)

type Shape struct {
	Font          string  `short:"f" desc:"Font file, Latin Modern Sans by default"`
	Index         int     `short:"i" desc:"Font index for font collections"`
	Size          float64 `short:"s" default:"16" desc:"Text size in pixels"`
	MaxWidth      float64 `short:"w" default:"10" desc:"Maximum line width in EMs, zero disables line breaking"`
	LineHeight    float64 `default:"1.2" desc:"Line height in EMs"`
	LetterSpacing float64 `desc:"Letter spacing in EMs"`
	Anchor        string  `short:"a" default:"center" desc:"Text anchor"`
	Justify       string  `short:"j" default:"center" desc:"Text justification"`
	Padding       float64 `short:"p" default:"2" desc:"Collision padding in pixels"`
	Vertical      bool    `desc:"Shape in vertical writing mode"`
	Verbose       bool    `short:"v" desc:"Log to standard error"`
	Text          string  `index:"0" desc:"Label text"`
}

func (cmd *Shape) Run() error {
	if cmd.Text == "" {
		return argp.ShowUsage
	} else if cmd.Size <= 0.0 {
		return fmt.Errorf("size must be positive")
	}
	setVerbose(cmd.Verbose)

	anchor, err := maplabel.ParseSymbolAnchor(cmd.Anchor)
	if err != nil {
		return fmt.Errorf("anchor: %w", err)
	}
	justify, err := maplabel.ParseTextJustify(cmd.Justify)
	if err != nil {
		return fmt.Errorf("justify: %w", err)
	} else if justify == maplabel.JustifyAuto {
		justify = maplabel.JustifyForAnchor(anchor)
	}

	s := text.NewTaggedStringFromText(cmd.Text, text.NewSectionOptions(1.0, fontStack, nil))
	glyphs, positions, err := loadGlyphs(cmd.Font, cmd.Index, s.RawText())
	if err != nil {
		return err
	}

	writingMode := maplabel.Horizontal
	if cmd.Vertical {
		writingMode = maplabel.Vertical
		s.VerticalizePunctuation()
	}
	shaping := maplabel.Shape(s, maplabel.ShapeOptions{
		MaxWidth:               cmd.MaxWidth * maplabel.OneEm,
		LineHeight:             cmd.LineHeight * maplabel.OneEm,
		Anchor:                 anchor,
		Justify:                justify,
		Spacing:                cmd.LetterSpacing * maplabel.OneEm,
		WritingMode:            writingMode,
		LayoutTextSize:         cmd.Size,
		AllowVerticalPlacement: cmd.Vertical,
	}, glyphs, positions, nil)

	fmt.Printf("Text: %q\n", s.String())
	fmt.Printf("Writing mode: %v\n", shaping.WritingMode)
	fmt.Printf("Bounds: left=%g top=%g right=%g bottom=%g\n", shaping.Left, shaping.Top, shaping.Right, shaping.Bottom)
	for i, line := range shaping.Lines {
		fmt.Printf("\nLine %d (offset %g):\n", i, line.LineOffset)
		for _, glyph := range line.Glyphs {
			fmt.Printf("  %q  x=%8.2f  y=%8.2f  scale=%g  vertical=%v  rect=%v\n", glyph.Rune, glyph.X, glyph.Y, glyph.Scale, glyph.Vertical, glyph.Rect)
		}
	}

	quads := maplabel.GlyphQuads(shaping, maplabel.Point{}, maplabel.QuadLayout{}, maplabel.PointPlacement, nil, cmd.Vertical)
	fmt.Printf("\nQuads:\n")
	for i, quad := range quads {
		fmt.Printf("  %3d  tl=%v  br=%v  tex=%v\n", i, quad.TL, quad.BR, quad.Tex)
	}

	// in pixels at the given text size
	boxScale := cmd.Size / atlas.GlyphSize
	feature := maplabel.CollisionFeatureFromShaping(nil, maplabel.Anchor{Segment: -1}, shaping, boxScale, cmd.Padding, maplabel.PointPlacement, maplabel.IndexedSubfeature{}, 1.0, 0.0)
	fmt.Printf("\nCollision boxes:\n")
	for _, box := range feature.Boxes {
		fmt.Printf("  [%g; %g]--[%g; %g]\n", box.X1, box.Y1, box.X2, box.Y2)
	}
	return nil
}
