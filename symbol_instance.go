package maplabel

import (
	"github.com/paulmach/orb"
	"github.com/tdewolff/maplabel/atlas"
)

// ShapedTextOrientations holds the shapings of a label's text for every justification and writing mode that may be placed. With variable anchors, Horizontal holds the right-justified shaping.
type ShapedTextOrientations struct {
	Horizontal Shaping
	Vertical   Shaping
	Center     Shaping
	Left       Shaping

	// SingleLine is set when the text fits on one line, in which case all justifications are equal and only one is shaped.
	SingleLine bool
}

// Right returns the right-justified shaping.
func (o *ShapedTextOrientations) Right() Shaping {
	return o.Horizontal
}

// DefaultHorizontalShaping returns any of the horizontal shapings that has glyphs, preferring right, center, and left justification in that order. All justifications have the same bounding box.
func (o *ShapedTextOrientations) DefaultHorizontalShaping() Shaping {
	if o.Horizontal.IsAnyLineNotEmpty() {
		return o.Horizontal
	} else if o.Center.IsAnyLineNotEmpty() {
		return o.Center
	} else if o.Left.IsAnyLineNotEmpty() {
		return o.Left
	}
	return o.Horizontal
}

// AnyShaping returns any shaping that has glyphs, including the vertical shaping.
func (o *ShapedTextOrientations) AnyShaping() Shaping {
	if shaping := o.DefaultHorizontalShaping(); shaping.IsAnyLineNotEmpty() {
		return shaping
	} else if o.Vertical.IsAnyLineNotEmpty() {
		return o.Vertical
	}
	return o.Horizontal
}

// ForJustify returns the shaping slot for the justification, which must be left, center, or right.
func (o *ShapedTextOrientations) ForJustify(justify TextJustify) *Shaping {
	switch justify {
	case JustifyRight:
		return &o.Horizontal
	case JustifyCenter:
		return &o.Center
	case JustifyLeft:
		return &o.Left
	}
	panic(ErrJustify)
}

// SymbolInstanceSharedData holds the geometry and quads shared by all symbol instances of one line or point. Quads for a justification are only built if it has a shaping. Icon quads are nil when there is no icon.
type SymbolInstanceSharedData struct {
	Line orb.LineString

	// when the text is on a single line, only RightJustifiedGlyphQuads is set
	RightJustifiedGlyphQuads  []SymbolQuad
	CenterJustifiedGlyphQuads []SymbolQuad
	LeftJustifiedGlyphQuads   []SymbolQuad
	VerticalGlyphQuads        []SymbolQuad
	IconQuads                 []SymbolQuad
	VerticalIconQuads         []SymbolQuad
}

// QuadOptions are the properties of a symbol needed to build its quads.
type QuadOptions struct {
	Layout                 QuadLayout
	TextPlacement          SymbolPlacement
	TextOffset             Point
	IconRotation           float64
	IconType               SymbolContent
	HasIconTextFit         bool
	AllowVerticalPlacement bool
}

// NewSymbolInstanceSharedData builds the quads of the text and icon of a symbol.
func NewSymbolInstanceSharedData(line orb.LineString, orientations *ShapedTextOrientations, icon, verticalIcon *PositionedIcon, images atlas.ImagePositions, opts QuadOptions) *SymbolInstanceSharedData {
	d := &SymbolInstanceSharedData{
		Line: line,
	}
	if icon != nil {
		d.IconQuads = IconQuads(*icon, opts.IconRotation, opts.IconType, opts.HasIconTextFit)
		if verticalIcon != nil {
			d.VerticalIconQuads = IconQuads(*verticalIcon, opts.IconRotation, opts.IconType, opts.HasIconTextFit)
		}
	}

	if !orientations.SingleLine {
		if orientations.Horizontal.IsAnyLineNotEmpty() {
			d.RightJustifiedGlyphQuads = shapingQuads(orientations.Horizontal, images, opts)
		}
		if orientations.Center.IsAnyLineNotEmpty() {
			d.CenterJustifiedGlyphQuads = shapingQuads(orientations.Center, images, opts)
		}
		if orientations.Left.IsAnyLineNotEmpty() {
			d.LeftJustifiedGlyphQuads = shapingQuads(orientations.Left, images, opts)
		}
	} else if shaping := orientations.DefaultHorizontalShaping(); shaping.IsAnyLineNotEmpty() {
		d.RightJustifiedGlyphQuads = shapingQuads(shaping, images, opts)
	}
	if orientations.Vertical.IsAnyLineNotEmpty() {
		d.VerticalGlyphQuads = shapingQuads(orientations.Vertical, images, opts)
	}
	return d
}

func shapingQuads(shaping Shaping, images atlas.ImagePositions, opts QuadOptions) []SymbolQuad {
	return GlyphQuads(shaping, opts.TextOffset, opts.Layout, opts.TextPlacement, images, opts.AllowVerticalPlacement)
}

// Empty returns true if there are no glyph quads.
func (d *SymbolInstanceSharedData) Empty() bool {
	return len(d.RightJustifiedGlyphQuads) == 0 && len(d.CenterJustifiedGlyphQuads) == 0 && len(d.LeftJustifiedGlyphQuads) == 0 && len(d.VerticalGlyphQuads) == 0
}

// InstanceOptions are the scaled layout properties of a symbol instance.
type InstanceOptions struct {
	TextBoxScale  float64
	TextPadding   float64
	TextPlacement SymbolPlacement
	TextOffset    Point
	TextRotation  float64

	IconBoxScale float64
	IconPadding  float64
	IconOffset   Point
	IconRotation float64
	IconType     SymbolContent

	Feature            IndexedSubfeature
	LayoutFeatureIndex int // index into the features given to the layout
	DataFeatureIndex   int // index into the features of the tile data
	Key                string
	Overscaling        float64

	// VariableTextOffset is the text offset or the radial offset followed by InvalidOffset, in layout units.
	VariableTextOffset     [2]float64
	AllowVerticalPlacement bool
}

// verticalPointLabelAngle is the rotation of vertical labels at a point.
const verticalPointLabelAngle = 90.0

// SymbolInstance is a symbol at one anchor, with the collision features of all its variants. The quads are shared with other instances of the same line.
type SymbolInstance struct {
	shared *SymbolInstanceSharedData

	Anchor  Anchor
	Content SymbolContent
	InstanceOptions

	RightJustifiedGlyphQuadsSize  int
	CenterJustifiedGlyphQuadsSize int
	LeftJustifiedGlyphQuadsSize   int
	VerticalGlyphQuadsSize        int
	IconQuadsSize                 int

	TextCollisionFeature         CollisionFeature
	IconCollisionFeature         CollisionFeature
	VerticalTextCollisionFeature *CollisionFeature
	VerticalIconCollisionFeature *CollisionFeature

	WritingModes WritingMode
	SingleLine   bool
}

// NewSymbolInstance returns a symbol instance at the anchor and builds its collision features. The text collision feature may use any of the shapings since they share a bounding box.
func NewSymbolInstance(anchor Anchor, shared *SymbolInstanceSharedData, orientations *ShapedTextOrientations, icon, verticalIcon *PositionedIcon, opts InstanceOptions) SymbolInstance {
	s := SymbolInstance{
		shared:          shared,
		Anchor:          anchor,
		Content:         opts.IconType,
		InstanceOptions: opts,
		SingleLine:      orientations.SingleLine,
	}
	s.TextCollisionFeature = CollisionFeatureFromShaping(shared.Line, anchor, orientations.AnyShaping(), opts.TextBoxScale, opts.TextPadding, opts.TextPlacement, opts.Feature, opts.Overscaling, opts.TextRotation)
	s.IconCollisionFeature = CollisionFeatureFromIcon(shared.Line, anchor, icon, opts.IconBoxScale, opts.IconPadding, opts.Feature, opts.IconRotation)

	// text depends on at least one glyph being found in the atlas
	if !shared.Empty() {
		s.Content |= ContentText
	}
	if opts.AllowVerticalPlacement && orientations.Vertical.IsAnyLineNotEmpty() {
		textFeature := CollisionFeatureFromShaping(shared.Line, anchor, orientations.Vertical, opts.TextBoxScale, opts.TextPadding, opts.TextPlacement, opts.Feature, opts.Overscaling, opts.TextRotation+verticalPointLabelAngle)
		s.VerticalTextCollisionFeature = &textFeature
		if verticalIcon != nil {
			iconFeature := CollisionFeatureFromIcon(shared.Line, anchor, verticalIcon, opts.IconBoxScale, opts.IconPadding, opts.Feature, opts.IconRotation+verticalPointLabelAngle)
			s.VerticalIconCollisionFeature = &iconFeature
		}
	}

	s.RightJustifiedGlyphQuadsSize = len(shared.RightJustifiedGlyphQuads)
	s.CenterJustifiedGlyphQuadsSize = len(shared.CenterJustifiedGlyphQuads)
	s.LeftJustifiedGlyphQuadsSize = len(shared.LeftJustifiedGlyphQuads)
	s.VerticalGlyphQuadsSize = len(shared.VerticalGlyphQuads)
	s.IconQuadsSize = len(shared.IconQuads)

	if s.RightJustifiedGlyphQuadsSize != 0 || s.CenterJustifiedGlyphQuadsSize != 0 || s.LeftJustifiedGlyphQuadsSize != 0 {
		s.WritingModes |= Horizontal
	}
	if s.VerticalGlyphQuadsSize != 0 {
		s.WritingModes |= Vertical
	}
	return s
}

// Line returns the line the symbol is placed on, which is a single point for point features.
func (s SymbolInstance) Line() orb.LineString {
	return s.shared.Line
}

// RightJustifiedGlyphQuads returns the glyph quads of the right-justified text, or of any justification for text on a single line.
func (s SymbolInstance) RightJustifiedGlyphQuads() []SymbolQuad {
	return s.shared.RightJustifiedGlyphQuads
}

// CenterJustifiedGlyphQuads returns the glyph quads of the centered text.
func (s SymbolInstance) CenterJustifiedGlyphQuads() []SymbolQuad {
	return s.shared.CenterJustifiedGlyphQuads
}

// LeftJustifiedGlyphQuads returns the glyph quads of the left-justified text.
func (s SymbolInstance) LeftJustifiedGlyphQuads() []SymbolQuad {
	return s.shared.LeftJustifiedGlyphQuads
}

// VerticalGlyphQuads returns the glyph quads of the vertical text.
func (s SymbolInstance) VerticalGlyphQuads() []SymbolQuad {
	return s.shared.VerticalGlyphQuads
}

// IconQuads returns the quads of the icon, or nil.
func (s SymbolInstance) IconQuads() []SymbolQuad {
	return s.shared.IconQuads
}

// VerticalIconQuads returns the quads of the icon fitted to vertical text, or nil.
func (s SymbolInstance) VerticalIconQuads() []SymbolQuad {
	return s.shared.VerticalIconQuads
}

// HasText returns true if any glyph quads were built.
func (s SymbolInstance) HasText() bool {
	return s.Content&ContentText != 0
}

// HasIcon returns true if the symbol has an icon.
func (s SymbolInstance) HasIcon() bool {
	return s.Content&ContentIconRGBA != 0 || s.HasSDFIcon()
}

// HasSDFIcon returns true if the symbol has a signed distance field icon.
func (s SymbolInstance) HasSDFIcon() bool {
	return s.Content&ContentIconSDF != 0
}
