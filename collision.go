package maplabel

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SignedDistanceSlack is the factor by which the distances of probes along a line are underestimated, which gives slack to the collision test of circles along the line.
var SignedDistanceSlack = 0.8

// Anchor is the position of a symbol in tile units. For symbols along a line, Segment is the index of the line segment that contains the anchor and Angle is the angle of that segment.
type Anchor struct {
	Point   Point
	Angle   float64
	Segment int // -1 if unknown
}

// IndexedSubfeature identifies the feature a symbol belongs to.
type IndexedSubfeature struct {
	Index           int // index of the feature in the tile data
	SortIndex       int // index of the symbol instance within the layout
	SourceLayerName string
	BucketLeaderID  string
}

// CollisionBox is a probe of a collision feature, a box around its anchor given by the extents to the edges.
type CollisionBox struct {
	Anchor         Point
	X1, Y1, X2, Y2 float64

	// SignedDistanceFromAnchor is the distance along the line from the symbol's anchor to this box.
	SignedDistanceFromAnchor float64
}

// CollisionFeature is the sequence of probes that approximates the footprint of a label for collision detection.
type CollisionFeature struct {
	Boxes     []CollisionBox
	AlongLine bool
	Feature   IndexedSubfeature
}

// NewCollisionFeature returns the collision feature of a box with the given extents around the anchor, in layout units scaled by boxScale and grown by padding. Point placements produce one box, which is enveloped when rotated by rotate degrees. Line placements produce a sequence of square boxes along the line. A box without extents has no probes.
func NewCollisionFeature(line orb.LineString, anchor Anchor, top, bottom, left, right float64, collisionPadding *Padding, boxScale, padding float64, placement SymbolPlacement, feature IndexedSubfeature, overscaling, rotate float64) CollisionFeature {
	f := CollisionFeature{
		AlongLine: placement != PointPlacement,
		Feature:   feature,
	}
	if top == 0.0 && bottom == 0.0 && left == 0.0 && right == 0.0 {
		return f
	}

	y1 := top*boxScale - padding
	y2 := bottom*boxScale + padding
	x1 := left*boxScale - padding
	x2 := right*boxScale + padding
	if collisionPadding != nil {
		x1 -= collisionPadding.Left * boxScale
		y1 -= collisionPadding.Top * boxScale
		x2 += collisionPadding.Right * boxScale
		y2 += collisionPadding.Bottom * boxScale
	}

	if f.AlongLine {
		height := y2 - y1
		length := x2 - x1
		if height <= 0.0 {
			return f
		}
		height = math.Max(10.0*boxScale, height)

		segment := anchor.Segment
		if segment < 0 {
			segment = 0
		}
		f.bboxifyLabel(line, anchor.Point.Orb(), segment, length, height, overscaling)
	} else if rotate != 0.0 {
		// collision boxes must be axis-aligned, so take the envelope of the rotated box
		m := Identity.Rotate(rotate)
		xmin, ymin, xmax, ymax := envelope(
			m.Dot(Point{x1, y1}),
			m.Dot(Point{x2, y1}),
			m.Dot(Point{x1, y2}),
			m.Dot(Point{x2, y2}),
		)
		f.Boxes = append(f.Boxes, CollisionBox{
			Anchor: anchor.Point,
			X1:     xmin,
			Y1:     ymin,
			X2:     xmax,
			Y2:     ymax,
		})
	} else {
		f.Boxes = append(f.Boxes, CollisionBox{
			Anchor: anchor.Point,
			X1:     x1,
			Y1:     y1,
			X2:     x2,
			Y2:     y2,
		})
	}
	return f
}

// CollisionFeatureFromShaping returns the collision feature of shaped text.
func CollisionFeatureFromShaping(line orb.LineString, anchor Anchor, shaping Shaping, boxScale, padding float64, placement SymbolPlacement, feature IndexedSubfeature, overscaling, rotate float64) CollisionFeature {
	return NewCollisionFeature(line, anchor, shaping.Top, shaping.Bottom, shaping.Left, shaping.Right, nil, boxScale, padding, placement, feature, overscaling, rotate)
}

// CollisionFeatureFromIcon returns the collision feature of an icon, which may be nil. Icons always collide as point placements, even when they rotate with the map or follow a line.
func CollisionFeatureFromIcon(line orb.LineString, anchor Anchor, icon *PositionedIcon, boxScale, padding float64, feature IndexedSubfeature, rotate float64) CollisionFeature {
	if icon == nil {
		return NewCollisionFeature(line, anchor, 0.0, 0.0, 0.0, 0.0, nil, boxScale, padding, PointPlacement, feature, 1.0, rotate)
	}
	collisionPadding := icon.CollisionPadding
	return NewCollisionFeature(line, anchor, icon.Top, icon.Bottom, icon.Left, icon.Right, &collisionPadding, boxScale, padding, PointPlacement, feature, 1.0, rotate)
}

// bboxifyLabel adds square boxes of boxSize along the line, centered on the anchor and covering labelLength. Extra boxes are added on both ends for overscaled tiles, since labels appear longer in the distance of a pitched map. Boxes stop at the ends of the line.
func (f *CollisionFeature) bboxifyLabel(line orb.LineString, anchorPoint orb.Point, segment int, labelLength, boxSize, overscaling float64) {
	if len(line) <= segment+1 {
		return
	}

	step := boxSize / 2.0
	nBoxes := max(1, int(math.Floor(labelLength/step)))

	nPitchPaddingBoxes := 0
	overscalingPaddingFactor := 1.0 + 0.4*math.Log2(overscaling)
	if n := math.Floor(float64(nBoxes) * overscalingPaddingFactor / 2.0); 0.0 < n {
		nPitchPaddingBoxes = int(n)
	}

	// offset the first box by half a box so that its edge is at the edge of the label
	firstBoxOffset := -boxSize / 2.0

	p := anchorPoint
	index := segment + 1
	anchorDistance := firstBoxOffset
	labelStartDistance := -labelLength / 2.0
	paddingStartDistance := labelStartDistance - labelLength/8.0

	// move backwards along the line to the first segment the label appears on
	for {
		if index == 0 {
			if labelStartDistance < anchorDistance {
				// not enough room for the label after the beginning of the line
				return
			}
			// not enough room for all padding, but enough for the label
			break
		}
		index--
		anchorDistance -= planar.Distance(line[index], p)
		p = line[index]
		if anchorDistance <= paddingStartDistance {
			break
		}
	}
	if len(line) <= index+1 {
		return
	}
	segmentLength := planar.Distance(line[index], line[index+1])

	for i := -nPitchPaddingBoxes; i < nBoxes+nPitchPaddingBoxes; i++ {
		// distance of the box to the anchor, pitch padding boxes are spaced further apart
		boxOffset := float64(i) * step
		boxDistanceToAnchor := labelStartDistance + boxOffset
		if boxOffset < 0.0 {
			boxDistanceToAnchor += boxOffset
		}
		if labelLength < boxOffset {
			boxDistanceToAnchor += boxOffset - labelLength
		}

		if boxDistanceToAnchor < anchorDistance {
			// the line doesn't extend far enough back for this box
			continue
		}

		for anchorDistance+segmentLength < boxDistanceToAnchor {
			anchorDistance += segmentLength
			index++
			if len(line) <= index+1 {
				// not enough room before the end of the line
				return
			}
			segmentLength = planar.Distance(line[index], line[index+1])
		}

		t := (boxDistanceToAnchor - anchorDistance) / segmentLength
		p0, p1 := PointFromOrb(line[index]), PointFromOrb(line[index+1])
		boxAnchor := Point{p0.X + t*(p1.X-p0.X), p0.Y + t*(p1.Y-p0.Y)}

		// boxes within one box of the anchor are always used, so that even labels without width have a box
		paddedAnchorDistance := 0.0
		if step <= math.Abs(boxDistanceToAnchor-firstBoxOffset) {
			paddedAnchorDistance = (boxDistanceToAnchor - firstBoxOffset) * SignedDistanceSlack
		}

		f.Boxes = append(f.Boxes, CollisionBox{
			Anchor:                   boxAnchor,
			X1:                       -boxSize / 2.0,
			Y1:                       -boxSize / 2.0,
			X2:                       boxSize / 2.0,
			Y2:                       boxSize / 2.0,
			SignedDistanceFromAnchor: paddedAnchorDistance,
		})
	}
}
