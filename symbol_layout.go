package maplabel

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/maplabel/text"
)

// Extent is the size of a tile in tile units.
const Extent = 8192.0

// InvalidOffset marks the second component of a variable text offset that holds a radial offset.
const InvalidOffset = math.MaxFloat64

// baselineOffset is the distance between the top of a line and the baseline that radial offsets are measured to, one EM minus the shaping's baseline offset.
const baselineOffset = 7.0

// LayoutOptions are the evaluated layout properties of a symbol layer. Text sizes are in pixels and most other lengths in EMs, as in style sheets.
type LayoutOptions struct {
	TextSize              float64 // at the zoom level above the tile, used for layout
	TextSizeAtBucketZoom  float64 // at the zoom level of the tile, used for images in text
	TextMaxWidth          float64 // in EMs
	TextLineHeight        float64 // in EMs
	TextLetterSpacing     float64 // in EMs
	TextAnchor            SymbolAnchor
	TextVariableAnchor    []SymbolAnchor
	TextJustify           TextJustify
	TextRadialOffset      float64 // in EMs, used instead of TextOffset when positive
	TextOffset            Point   // in EMs
	TextRotate            float64 // in degrees
	TextPadding           float64 // in pixels
	TextRotationAlignment Alignment

	IconSize           float64 // scale of the image
	IconOffset         Point   // in pixels
	IconAnchor         SymbolAnchor
	IconRotate         float64 // in degrees
	IconPadding        float64 // in pixels
	IconTextFit        IconTextFit
	IconTextFitPadding [4]float64 // top, right, bottom, left in pixels

	SymbolPlacement        SymbolPlacement
	SymbolSpacing          float64 // in pixels
	SortByKey              bool
	AllowVerticalPlacement bool

	TilePixelRatio float64 // tile units per pixel
	PixelRatio     float64 // device pixel ratio
	Overscaling    float64
	Mode           MapMode

	SourceLayerName string
	BucketLeaderID  string
}

// DefaultLayoutOptions returns the default layout properties for tiles of 512 pixels.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		TextSize:             16.0,
		TextSizeAtBucketZoom: 16.0,
		TextMaxWidth:         10.0,
		TextLineHeight:       1.2,
		TextAnchor:           AnchorCenter,
		TextJustify:          JustifyCenter,
		TextPadding:          2.0,
		IconSize:             1.0,
		IconAnchor:           AnchorCenter,
		IconPadding:          2.0,
		SymbolPlacement:      PointPlacement,
		SymbolSpacing:        250.0,
		TilePixelRatio:       Extent / 512.0,
		PixelRatio:           1.0,
		Overscaling:          1.0,
		Mode:                 ContinuousMode,
	}
}

// rotationAlignment resolves the automatic text rotation alignment, which follows the map for labels along lines.
func (o LayoutOptions) rotationAlignment() Alignment {
	if o.TextRotationAlignment == AlignAuto {
		if o.SymbolPlacement != PointPlacement {
			return AlignMap
		}
		return AlignViewport
	}
	return o.TextRotationAlignment
}

// SymbolFeature is a feature of a tile to be labeled. Geometry is in tile units and may be a (multi) point or (multi) line string. Text or Icon may be empty.
type SymbolFeature struct {
	Index    int // index into the features of the tile data
	Geometry orb.Geometry
	Text     *text.TaggedString
	Icon     string // image ID
	SortKey  float64
}

// SortKeyRange is a range of symbol instances [Start,End) that share a sort key.
type SortKeyRange struct {
	SortKey    float64
	Start, End int
}

// SymbolLayout shapes the labels of a layer in one tile and assembles their symbol instances.
type SymbolLayout struct {
	LayoutOptions

	Instances       []SymbolInstance
	SortKeyRanges   []SortKeyRange
	IconsNeedLinear bool
	IconsInText     bool

	compareText map[string][]Anchor
}

// NewSymbolLayout returns a symbol layout for a layer.
func NewSymbolLayout(opts LayoutOptions) *SymbolLayout {
	return &SymbolLayout{
		LayoutOptions: opts,
		compareText:   map[string][]Anchor{},
	}
}

// preparedFeature is the shaped text and icon of a feature.
type preparedFeature struct {
	orientations ShapedTextOrientations
	icon         *PositionedIcon
	iconType     SymbolContent
	textOffset   Point
}

// Prepare shapes the text and icon of every feature in every variant that may be placed, and adds a symbol instance for every anchor. Features are processed in order and the glyph and image tables must contain all glyphs and images used. Separate layouts may be prepared concurrently.
func (l *SymbolLayout) Prepare(features []SymbolFeature, glyphs atlas.GlyphMap, positions atlas.GlyphPositions, images atlas.ImagePositions) {
	for i, feature := range features {
		if feature.Geometry == nil {
			continue
		}
		prepared := l.prepareFeature(feature, glyphs, positions, images)

		// add the feature if it has text or an icon
		defaultShaping := prepared.orientations.DefaultHorizontalShaping()
		if defaultShaping.IsAnyLineNotEmpty() && defaultShaping.IconsInText {
			l.IconsInText = true
		}
		if defaultShaping.IsAnyLineNotEmpty() || prepared.icon != nil {
			l.addFeature(i, feature, prepared, images)
		}
	}
	Logger().Debug("prepare symbols", "layer", l.SourceLayerName, "features", len(features), "instances", len(l.Instances))
	clear(l.compareText)
}

// shapingOptions returns the options to shape text of a feature.
func (l *SymbolLayout) shapingOptions(s *text.TaggedString) ShapeOptions {
	opts := ShapeOptions{
		LineHeight:                 l.TextLineHeight * OneEm,
		LayoutTextSize:             l.TextSize,
		LayoutTextSizeAtBucketZoom: l.TextSizeAtBucketZoom,
		AllowVerticalPlacement:     l.AllowVerticalPlacement,
	}
	if l.SymbolPlacement == PointPlacement {
		opts.MaxWidth = l.TextMaxWidth * OneEm
	}
	if text.AllowsLetterSpacing(s.RawText()) {
		opts.Spacing = l.TextLetterSpacing * OneEm
	}
	return opts
}

func shapeVariant(s *text.TaggedString, opts ShapeOptions, writingMode WritingMode, anchor SymbolAnchor, justify TextJustify, offset Point, glyphs atlas.GlyphMap, positions atlas.GlyphPositions, images atlas.ImagePositions) Shaping {
	opts.WritingMode = writingMode
	opts.Anchor = anchor
	opts.Justify = justify
	opts.Translate = offset
	return Shape(s, opts, glyphs, positions, images)
}

func (l *SymbolLayout) prepareFeature(feature SymbolFeature, glyphs atlas.GlyphMap, positions atlas.GlyphPositions, images atlas.ImagePositions) preparedFeature {
	prepared := preparedFeature{}
	textAlongLine := l.rotationAlignment() == AlignMap && l.SymbolPlacement != PointPlacement

	if s := feature.Text; s != nil && 0.0 < l.TextSize {
		opts := l.shapingOptions(s)
		orientations := &prepared.orientations

		// with variable anchors the offset is calculated at placement
		if len(l.TextVariableAnchor) == 0 {
			if 0.0 < l.TextRadialOffset {
				prepared.textOffset = EvaluateRadialOffset(l.TextAnchor, l.TextRadialOffset*OneEm)
			} else {
				prepared.textOffset = l.TextOffset.Mul(OneEm)
			}
		}

		justify := l.TextJustify
		if textAlongLine {
			justify = JustifyCenter
		}

		addVerticalShaping := func() {
			if l.AllowVerticalPlacement && s.AllowsVerticalWritingMode() {
				// vertical point labels are meant for scripts that support vertical writing, which use left justification
				s.VerticalizePunctuation()
				orientations.Vertical = shapeVariant(s, opts, Vertical, l.TextAnchor, JustifyLeft, prepared.textOffset, glyphs, positions, images)
			}
		}

		if !textAlongLine && len(l.TextVariableAnchor) != 0 {
			// shape all justifications for variable anchors
			justifications := []TextJustify{}
			if justify != JustifyAuto {
				justifications = append(justifications, justify)
			} else {
				for _, anchor := range l.TextVariableAnchor {
					justifications = append(justifications, JustifyForAnchor(anchor))
				}
			}
			for _, justification := range justifications {
				slot := orientations.ForJustify(justification)
				if slot.IsAnyLineNotEmpty() {
					continue
				}

				// variable anchors use a centered shaping and the offset for the anchor is applied at placement
				shaping := shapeVariant(s, opts, Horizontal, AnchorCenter, justification, prepared.textOffset, glyphs, positions, images)
				if shaping.IsAnyLineNotEmpty() {
					*slot = shaping
					if len(shaping.Lines) == 1 {
						orientations.SingleLine = true
						break
					}
				}
			}
			addVerticalShaping()
		} else {
			if justify == JustifyAuto {
				justify = JustifyForAnchor(l.TextAnchor)
			}

			// horizontal point or line label
			if shaping := shapeVariant(s, opts, Horizontal, l.TextAnchor, justify, prepared.textOffset, glyphs, positions, images); shaping.IsAnyLineNotEmpty() {
				orientations.Horizontal = shaping
			}
			addVerticalShaping()

			// verticalized line label
			if textAlongLine && s.AllowsVerticalWritingMode() {
				s.VerticalizePunctuation()
				orientations.Vertical = shapeVariant(s, opts, Vertical, l.TextAnchor, justify, prepared.textOffset, glyphs, positions, images)
			}
		}
	}

	if feature.Icon != "" {
		if image, ok := images.Lookup(feature.Icon); ok {
			prepared.iconType = ContentIconRGBA
			if image.SDF {
				prepared.iconType = ContentIconSDF
			}
			icon := ShapeIcon(image, l.IconOffset, l.IconAnchor)
			prepared.icon = &icon
			if image.PixelRatio != l.PixelRatio || l.IconRotate != 0.0 {
				l.IconsNeedLinear = true
			}
		} else {
			Logger().Warn("icon not found", "image", feature.Icon, "feature", feature.Index)
		}
	}
	return prepared
}

func (l *SymbolLayout) addFeature(layoutFeatureIndex int, feature SymbolFeature, prepared preparedFeature, images atlas.ImagePositions) {
	orientations := &prepared.orientations
	fontScale := l.TextSize / atlas.GlyphSize

	variableTextOffset := [2]float64{l.TextOffset.X * OneEm, l.TextOffset.Y * OneEm}
	if 0.0 < l.TextRadialOffset {
		variableTextOffset = [2]float64{l.TextRadialOffset * OneEm, InvalidOffset}
	}

	textPlacement := PointPlacement
	if l.rotationAlignment() == AlignMap {
		textPlacement = l.SymbolPlacement
	}

	opts := InstanceOptions{
		TextBoxScale:  l.TilePixelRatio * fontScale,
		TextPadding:   l.TextPadding * l.TilePixelRatio,
		TextPlacement: textPlacement,
		TextOffset:    prepared.textOffset,
		TextRotation:  l.TextRotate,
		IconBoxScale:  l.TilePixelRatio * l.IconSize,
		IconPadding:   l.IconPadding * l.TilePixelRatio,
		IconOffset:    l.IconOffset,
		IconRotation:  l.IconRotate,
		IconType:      prepared.iconType,
		Feature: IndexedSubfeature{
			Index:           feature.Index,
			SourceLayerName: l.SourceLayerName,
			BucketLeaderID:  l.BucketLeaderID,
		},
		LayoutFeatureIndex:     layoutFeatureIndex,
		DataFeatureIndex:       feature.Index,
		Overscaling:            l.Overscaling,
		VariableTextOffset:     variableTextOffset,
		AllowVerticalPlacement: l.AllowVerticalPlacement,
	}
	if feature.Text != nil {
		opts.Key = feature.Text.String()
	}

	// fit the icon to the text
	hasIconTextFit := l.IconTextFit != FitNone
	icon := prepared.icon
	var verticalIcon *PositionedIcon
	if icon != nil && hasIconTextFit {
		if l.AllowVerticalPlacement && orientations.Vertical.IsAnyLineNotEmpty() {
			fitted := *icon
			fitted.FitIconToText(orientations.Vertical, l.IconTextFit, l.IconTextFitPadding, l.IconOffset, fontScale)
			verticalIcon = &fitted
		}
		if shaping := orientations.DefaultHorizontalShaping(); shaping.IsAnyLineNotEmpty() {
			fitted := *icon
			fitted.FitIconToText(shaping, l.IconTextFit, l.IconTextFitPadding, l.IconOffset, fontScale)
			icon = &fitted
		}
	}

	quadOpts := QuadOptions{
		Layout: QuadLayout{
			TextRotate:            l.TextRotate,
			TextRotationAlignment: l.rotationAlignment(),
		},
		TextPlacement:          textPlacement,
		TextOffset:             prepared.textOffset,
		IconRotation:           l.IconRotate,
		IconType:               prepared.iconType,
		HasIconTextFit:         hasIconTextFit,
		AllowVerticalPlacement: l.AllowVerticalPlacement,
	}
	parts := symbolParts{
		orientations: orientations,
		icon:         icon,
		verticalIcon: verticalIcon,
		quadOpts:     quadOpts,
		opts:         opts,
		sortKey:      feature.SortKey,
	}

	switch l.SymbolPlacement {
	case LinePlacement:
		Logger().Debug("anchors along lines are not supported", "feature", feature.Index)
		return
	case LineCenterPlacement:
		// lines with a single point are ignored
		for _, line := range lineStrings(feature.Geometry) {
			if anchor, ok := centerAnchor(line); ok {
				if feature.Text == nil || !l.anchorIsTooClose(opts.Key, l.TilePixelRatio*l.SymbolSpacing/2.0, anchor) {
					l.addSymbolInstance(anchor, line, parts, images)
				}
			}
		}
		return
	}

	switch g := feature.Geometry.(type) {
	case orb.Point:
		l.addSymbolInstance(Anchor{Point: PointFromOrb(g), Segment: -1}, orb.LineString{g}, parts, images)
	case orb.MultiPoint:
		for _, p := range g {
			l.addSymbolInstance(Anchor{Point: PointFromOrb(p), Segment: -1}, orb.LineString{p}, parts, images)
		}
	case orb.LineString, orb.MultiLineString:
		for _, line := range lineStrings(g) {
			if len(line) == 0 {
				continue
			}
			l.addSymbolInstance(Anchor{Point: PointFromOrb(line[0]), Segment: 0}, line, parts, images)
		}
	default:
		Logger().Debug("unsupported geometry for symbols", "feature", feature.Index, "type", g.GeoJSONType())
	}
}

// symbolParts are the shaped text, icons, and options shared by all anchors of a feature.
type symbolParts struct {
	orientations       *ShapedTextOrientations
	icon, verticalIcon *PositionedIcon
	quadOpts           QuadOptions
	opts               InstanceOptions
	sortKey            float64
}

// addSymbolInstance adds a symbol instance at the anchor if it lies inside the tile. In tile mode all instances are added, so that symbols overlapping from neighbouring tiles are drawn and collide.
func (l *SymbolLayout) addSymbolInstance(anchor Anchor, line orb.LineString, parts symbolParts, images atlas.ImagePositions) {
	p := anchor.Point
	insideTile := 0.0 <= p.X && p.X < Extent && 0.0 <= p.Y && p.Y < Extent
	if l.Mode != TileMode && !insideTile {
		return
	}

	shared := NewSymbolInstanceSharedData(line, parts.orientations, parts.icon, parts.verticalIcon, images, parts.quadOpts)
	sortKey := parts.sortKey
	opts := parts.opts
	opts.Feature.SortIndex = len(l.Instances)
	l.Instances = append(l.Instances, NewSymbolInstance(anchor, shared, parts.orientations, parts.icon, parts.verticalIcon, opts))
	if l.SortByKey {
		if n := len(l.SortKeyRanges); n != 0 && l.SortKeyRanges[n-1].SortKey == sortKey {
			l.SortKeyRanges[n-1].End = len(l.Instances)
		} else {
			l.SortKeyRanges = append(l.SortKeyRanges, SortKeyRange{
				SortKey: sortKey,
				Start:   len(l.Instances) - 1,
				End:     len(l.Instances),
			})
		}
	}
}

// anchorIsTooClose returns true if another anchor with the same text lies within repeatDistance, otherwise the anchor is recorded.
func (l *SymbolLayout) anchorIsTooClose(key string, repeatDistance float64, anchor Anchor) bool {
	for _, other := range l.compareText[key] {
		if planar.Distance(anchor.Point.Orb(), other.Point.Orb()) < repeatDistance {
			return true
		}
	}
	l.compareText[key] = append(l.compareText[key], anchor)
	return false
}

func lineStrings(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	}
	return nil
}

// centerAnchor returns the anchor halfway along the line.
func centerAnchor(line orb.LineString) (Anchor, bool) {
	if len(line) < 2 {
		return Anchor{}, false
	}
	centerDistance := planar.Length(line) / 2.0

	prevDistance := 0.0
	for i := 0; i+1 < len(line); i++ {
		a, b := PointFromOrb(line[i]), PointFromOrb(line[i+1])
		segmentDistance := planar.Distance(line[i], line[i+1])
		if centerDistance <= prevDistance+segmentDistance && segmentDistance != 0.0 {
			t := (centerDistance - prevDistance) / segmentDistance
			return Anchor{
				Point:   a.Interpolate(b, t),
				Angle:   math.Atan2(b.Y-a.Y, b.X-a.X),
				Segment: i,
			}, true
		}
		prevDistance += segmentDistance
	}
	return Anchor{}, false
}

// CalculateTileDistances returns for every vertex of the line the distance along the line to the anchor. Without segment all distances are zero.
func CalculateTileDistances(line orb.LineString, anchor Anchor) []float64 {
	distances := make([]float64, len(line))
	if anchor.Segment < 0 {
		return distances
	} else if len(line) <= anchor.Segment {
		panic(ErrSegment)
	}

	p := anchor.Point.Orb()
	segment := anchor.Segment
	sumForward := 0.0
	if segment+1 < len(line) {
		sumForward = planar.Distance(p, line[segment+1])
	}
	for i := segment + 1; i < len(line); i++ {
		distances[i] = sumForward
		if i < len(line)-1 {
			sumForward += planar.Distance(line[i+1], line[i])
		}
	}

	sumBackward := planar.Distance(p, line[segment])
	for i := segment; 0 <= i; i-- {
		distances[i] = sumBackward
		if 0 < i {
			sumBackward += planar.Distance(line[i-1], line[i])
		}
	}
	return distances
}

// EvaluateRadialOffset returns the text offset for an anchor at the given radial distance. Diagonal anchors are offset by the radial distance along the diagonal, and vertical offsets are measured to the baseline.
func EvaluateRadialOffset(anchor SymbolAnchor, radialOffset float64) Point {
	offset := Point{}
	radialOffset = math.Max(0.0, radialOffset)

	// solve for r where r^2 + r^2 = radialOffset^2
	const sqrt2 = 1.41421356237
	hypotenuse := radialOffset / sqrt2

	switch anchor {
	case AnchorTopRight, AnchorTopLeft:
		offset.Y = hypotenuse - baselineOffset
	case AnchorBottomRight, AnchorBottomLeft:
		offset.Y = -hypotenuse + baselineOffset
	case AnchorBottom:
		offset.Y = -radialOffset + baselineOffset
	case AnchorTop:
		offset.Y = radialOffset - baselineOffset
	}

	switch anchor {
	case AnchorTopRight, AnchorBottomRight:
		offset.X = -hypotenuse
	case AnchorTopLeft, AnchorBottomLeft:
		offset.X = hypotenuse
	case AnchorLeft:
		offset.X = radialOffset
	case AnchorRight:
		offset.X = -radialOffset
	}
	return offset
}

// EvaluateVariableOffset returns the text offset for an anchor, given either a text offset or a radial offset followed by InvalidOffset. The text is moved away from the anchor by the absolute offset.
func EvaluateVariableOffset(anchor SymbolAnchor, offset [2]float64) Point {
	if offset[1] == InvalidOffset {
		return EvaluateRadialOffset(anchor, offset[0])
	}
	dx, dy := math.Abs(offset[0]), math.Abs(offset[1])

	result := Point{}
	switch anchor {
	case AnchorTopRight, AnchorTopLeft, AnchorTop:
		result.Y = dy - baselineOffset
	case AnchorBottomRight, AnchorBottomLeft, AnchorBottom:
		result.Y = -dy + baselineOffset
	}

	switch anchor {
	case AnchorTopRight, AnchorBottomRight, AnchorRight:
		result.X = -dx
	case AnchorTopLeft, AnchorBottomLeft, AnchorLeft:
		result.X = dx
	}
	return result
}
