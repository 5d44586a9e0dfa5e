package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/paulmach/orb"
	"github.com/tdewolff/maplabel"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

var (
	featureColor  = color.RGBA{0xC0, 0xC0, 0xC0, 0xFF}
	textBoxColor  = color.RGBA{0x00, 0x40, 0xC0, 0xFF}
	iconBoxColor  = color.RGBA{0xC0, 0x20, 0x00, 0xFF}
	glyphColor    = color.RGBA{0x00, 0x00, 0x00, 0x80}
	anchorColor   = color.RGBA{0x00, 0x80, 0x00, 0xFF}
	strokeWidth   = 1.0 // in pixels
	anchorSize    = 3.0 // in pixels
	featureRadius = 2.0 // in pixels
)

type renderer struct {
	img   *image.RGBA
	scale float64 // pixels per tile unit
}

// render draws the features, the collision boxes of all symbols, and the glyphs of point labels to a PNG image.
func render(filename string, size int, features []maplabel.SymbolFeature, layouts ...*maplabel.SymbolLayout) error {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	r := renderer{
		img:   img,
		scale: float64(size) / maplabel.Extent,
	}
	for _, f := range features {
		r.geometry(f.Geometry)
	}
	for _, l := range layouts {
		for _, s := range l.Instances {
			r.instance(s)
		}
	}

	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// fill fills the polygon given in tile units.
func (r renderer) fill(ps []maplabel.Point, c color.Color) {
	if len(ps) < 3 {
		return
	}
	size := r.img.Bounds().Size()
	ras := vector.NewRasterizer(size.X, size.Y)
	ras.MoveTo(float32(ps[0].X*r.scale), float32(ps[0].Y*r.scale))
	for _, p := range ps[1:] {
		ras.LineTo(float32(p.X*r.scale), float32(p.Y*r.scale))
	}
	ras.ClosePath()
	ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// stroke draws the segment from a to b given in tile units.
func (r renderer) stroke(a, b maplabel.Point, c color.Color) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0.0 {
		return
	}
	n := maplabel.Point{X: -d.Y, Y: d.X}.Mul(0.5 * strokeWidth / r.scale / length)
	r.fill([]maplabel.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, c)
}

func (r renderer) rect(x1, y1, x2, y2 float64, c color.Color) {
	tl, tr := maplabel.Point{X: x1, Y: y1}, maplabel.Point{X: x2, Y: y1}
	br, bl := maplabel.Point{X: x2, Y: y2}, maplabel.Point{X: x1, Y: y2}
	r.stroke(tl, tr, c)
	r.stroke(tr, br, c)
	r.stroke(br, bl, c)
	r.stroke(bl, tl, c)
}

func (r renderer) geometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d := featureRadius / r.scale
		p := maplabel.PointFromOrb(g)
		r.fill([]maplabel.Point{{X: p.X - d, Y: p.Y - d}, {X: p.X + d, Y: p.Y - d}, {X: p.X + d, Y: p.Y + d}, {X: p.X - d, Y: p.Y + d}}, featureColor)
	case orb.LineString:
		for i := 1; i < len(g); i++ {
			r.stroke(maplabel.PointFromOrb(g[i-1]), maplabel.PointFromOrb(g[i]), featureColor)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			r.geometry(ls)
		}
	}
}

func (r renderer) instance(s maplabel.SymbolInstance) {
	for _, box := range s.TextCollisionFeature.Boxes {
		r.rect(box.Anchor.X+box.X1, box.Anchor.Y+box.Y1, box.Anchor.X+box.X2, box.Anchor.Y+box.Y2, textBoxColor)
	}
	for _, box := range s.IconCollisionFeature.Boxes {
		r.rect(box.Anchor.X+box.X1, box.Anchor.Y+box.Y1, box.Anchor.X+box.X2, box.Anchor.Y+box.Y2, iconBoxColor)
	}

	// glyphs along lines are positioned at placement
	if !s.TextCollisionFeature.AlongLine {
		quads := s.RightJustifiedGlyphQuads()
		if len(quads) == 0 {
			quads = s.CenterJustifiedGlyphQuads()
		}
		if len(quads) == 0 {
			quads = s.LeftJustifiedGlyphQuads()
		}

		// labels with variable anchors are drawn centered on their anchor
		for _, quad := range quads {
			ps := []maplabel.Point{quad.TL, quad.TR, quad.BR, quad.BL}
			for i, p := range ps {
				ps[i] = s.Anchor.Point.Add(p.Mul(s.TextBoxScale))
			}
			r.fill(ps, glyphColor)
		}
	}

	d := anchorSize / r.scale
	p := s.Anchor.Point
	r.stroke(maplabel.Point{X: p.X - d, Y: p.Y}, maplabel.Point{X: p.X + d, Y: p.Y}, anchorColor)
	r.stroke(maplabel.Point{X: p.X, Y: p.Y - d}, maplabel.Point{X: p.X, Y: p.Y + d}, anchorColor)
}
