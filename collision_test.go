package maplabel

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/test"
)

var straightLine = orb.LineString{{0.0, 0.0}, {1000.0, 0.0}}

func lineAnchor(x, y float64, segment int) Anchor {
	return Anchor{Point: Point{x, y}, Segment: segment}
}

func TestCollisionFeatureEmpty(t *testing.T) {
	line := orb.LineString{{0.0, 0.0}, {100.0, 0.0}}
	shaping := NewShaping(0.0, 0.0, Horizontal)
	f := CollisionFeatureFromShaping(line, lineAnchor(50.0, 0.0, 0), shaping, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.T(t, len(f.Boxes), 0)
	test.That(t, f.AlongLine)

	f = CollisionFeatureFromShaping(line, lineAnchor(50.0, 0.0, 0), shaping, 1.0, 0.0, PointPlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.T(t, len(f.Boxes), 0)
	test.That(t, !f.AlongLine)

	f = CollisionFeatureFromIcon(line, lineAnchor(50.0, 0.0, 0), nil, 1.0, 0.0, IndexedSubfeature{}, 0.0)
	test.T(t, len(f.Boxes), 0)
}

func TestCollisionFeaturePoint(t *testing.T) {
	shaping := Shaping{Top: -10.0, Bottom: 30.0, Left: -60.0, Right: 20.0}
	anchor := Anchor{Point: Point{300.0, 400.0}, Segment: -1}
	feature := IndexedSubfeature{Index: 7, SourceLayerName: "poi"}

	f := CollisionFeatureFromShaping(nil, anchor, shaping, 1.0, 2.0, PointPlacement, feature, 1.0, 0.0)
	test.T(t, len(f.Boxes), 1)
	test.T(t, f.Feature, feature)
	test.T(t, f.Boxes[0].Anchor, Point{300.0, 400.0})
	test.Float(t, f.Boxes[0].X1, -62.0)
	test.Float(t, f.Boxes[0].Y1, -12.0)
	test.Float(t, f.Boxes[0].X2, 22.0)
	test.Float(t, f.Boxes[0].Y2, 32.0)

	f = CollisionFeatureFromShaping(nil, anchor, shaping, 2.0, 0.0, PointPlacement, feature, 1.0, 0.0)
	test.Float(t, f.Boxes[0].X1, -120.0)
	test.Float(t, f.Boxes[0].Y2, 60.0)
}

func TestCollisionFeatureRotated(t *testing.T) {
	shaping := Shaping{Top: -10.0, Bottom: 30.0, Left: -60.0, Right: 20.0}
	f := CollisionFeatureFromShaping(nil, lineAnchor(0.0, 0.0, -1), shaping, 1.0, 2.0, PointPlacement, IndexedSubfeature{}, 1.0, 90.0)
	test.T(t, len(f.Boxes), 1)
	test.Float(t, f.Boxes[0].X1, -32.0)
	test.Float(t, f.Boxes[0].Y1, -62.0)
	test.Float(t, f.Boxes[0].X2, 12.0)
	test.Float(t, f.Boxes[0].Y2, 22.0)
}

func TestCollisionFeatureIcon(t *testing.T) {
	image := testImage(18, 18)
	image.Content = &atlas.ImageContent{Left: 1.0, Top: 2.0, Right: 17.0, Bottom: 15.0}
	icon := ShapeIcon(image, Point{}, AnchorCenter)

	// icons collide as a single box, even along lines
	f := CollisionFeatureFromIcon(straightLine, lineAnchor(500.0, 0.0, 0), &icon, 1.0, 0.0, IndexedSubfeature{}, 0.0)
	test.T(t, len(f.Boxes), 1)
	test.That(t, !f.AlongLine)
	test.Float(t, f.Boxes[0].X1, -10.0)
	test.Float(t, f.Boxes[0].Y1, -11.0)
	test.Float(t, f.Boxes[0].X2, 10.0)
	test.Float(t, f.Boxes[0].Y2, 12.0)
}

func TestCollisionFeatureLine(t *testing.T) {
	f := NewCollisionFeature(straightLine, lineAnchor(500.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.That(t, f.AlongLine)

	// eight boxes cover the label and four boxes on each end pad it for pitched views
	test.T(t, len(f.Boxes), 16)
	for _, box := range f.Boxes {
		test.Float(t, box.X1, -12.0)
		test.Float(t, box.Y1, -12.0)
		test.Float(t, box.X2, 12.0)
		test.Float(t, box.Y2, 12.0)
		test.Float(t, box.Anchor.Y, 0.0)
	}
	test.Float(t, f.Boxes[0].Anchor.X, 366.0)
	test.Float(t, f.Boxes[4].Anchor.X, 462.0)
	test.Float(t, f.Boxes[15].Anchor.X, 626.0)

	// boxes near the anchor have no distance
	test.Float(t, f.Boxes[4].SignedDistanceFromAnchor, -38.0*0.8)
	test.Float(t, f.Boxes[5].SignedDistanceFromAnchor, -26.0*0.8)
	test.Float(t, f.Boxes[7].SignedDistanceFromAnchor, 0.0)
	test.Float(t, f.Boxes[8].SignedDistanceFromAnchor, 0.0)
	test.Float(t, f.Boxes[9].SignedDistanceFromAnchor, 22.0*0.8)
	for i := 1; i < len(f.Boxes); i++ {
		test.That(t, f.Boxes[i-1].Anchor.X < f.Boxes[i].Anchor.X, "boxes must advance along the line")
	}
}

func TestCollisionFeatureSlack(t *testing.T) {
	defer func(slack float64) {
		SignedDistanceSlack = slack
	}(SignedDistanceSlack)

	SignedDistanceSlack = 1.0
	f := NewCollisionFeature(straightLine, lineAnchor(500.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.Float(t, f.Boxes[4].SignedDistanceFromAnchor, -38.0)
}

func TestCollisionFeatureLineScale(t *testing.T) {
	// overscaled tiles get more padding boxes
	f := NewCollisionFeature(straightLine, lineAnchor(500.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 2.0, 0.0)
	test.T(t, len(f.Boxes), 18)

	// boxes have a minimum size
	f = NewCollisionFeature(straightLine, lineAnchor(500.0, 0.0, 0), -2.0, 2.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.T(t, len(f.Boxes), 40)
	test.Float(t, f.Boxes[0].X2-f.Boxes[0].X1, 10.0)

	f = NewCollisionFeature(straightLine, lineAnchor(500.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 2.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.Float(t, f.Boxes[0].X2-f.Boxes[0].X1, 48.0)
}

func TestCollisionFeatureShortLine(t *testing.T) {
	line := orb.LineString{{0.0, 0.0}, {10.0, 0.0}}
	f := NewCollisionFeature(line, lineAnchor(5.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)
	test.T(t, len(f.Boxes), 0)
}

func TestCollisionFeatureBend(t *testing.T) {
	line := orb.LineString{{0.0, 0.0}, {100.0, 0.0}, {100.0, 100.0}}
	f := NewCollisionFeature(line, lineAnchor(50.0, 0.0, 0), -12.0, 12.0, -50.0, 50.0, nil, 1.0, 0.0, LinePlacement, IndexedSubfeature{}, 1.0, 0.0)

	// boxes before the start of the line are dropped
	test.T(t, len(f.Boxes), 12)
	test.Float(t, f.Boxes[0].Anchor.X, 12.0)
	test.Float(t, f.Boxes[0].Anchor.Y, 0.0)
	test.Float(t, f.Boxes[7].Anchor.X, 96.0)
	test.Float(t, f.Boxes[7].Anchor.Y, 0.0)
	test.Float(t, f.Boxes[8].Anchor.X, 100.0)
	test.Float(t, f.Boxes[8].Anchor.Y, 8.0)
	test.Float(t, f.Boxes[11].Anchor.X, 100.0)
	test.Float(t, f.Boxes[11].Anchor.Y, 76.0)
}
