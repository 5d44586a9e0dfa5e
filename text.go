package maplabel

import (
	"fmt"
	"strconv"
	"strings"
)

// WritingMode is a set of flags of the orientations in which a label is laid out.
type WritingMode uint8

// see WritingMode
const (
	NoWritingMode WritingMode = 0
	Horizontal    WritingMode = 1 << (iota - 1)
	Vertical
)

func (wm WritingMode) String() string {
	switch wm {
	case NoWritingMode:
		return "None"
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Horizontal | Vertical:
		return "Horizontal|Vertical"
	}
	return "Invalid(" + strconv.Itoa(int(wm)) + ")"
}

// TextJustify specifies how lines of a multi-line label are justified relative to each other.
type TextJustify int

// see TextJustify
const (
	JustifyAuto TextJustify = iota // follows the anchor
	JustifyCenter
	JustifyLeft
	JustifyRight
)

func (j TextJustify) String() string {
	switch j {
	case JustifyAuto:
		return "auto"
	case JustifyCenter:
		return "center"
	case JustifyLeft:
		return "left"
	case JustifyRight:
		return "right"
	}
	return "Invalid(" + strconv.Itoa(int(j)) + ")"
}

// fraction returns the amount of the line length that the line is shifted to the left.
func (j TextJustify) fraction() float64 {
	switch j {
	case JustifyRight:
		return 1.0
	case JustifyLeft:
		return 0.0
	}
	return 0.5
}

// SymbolAnchor specifies which part of a label is placed closest to its anchor point.
type SymbolAnchor int

// see SymbolAnchor
const (
	AnchorCenter SymbolAnchor = iota
	AnchorLeft
	AnchorRight
	AnchorTop
	AnchorBottom
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

func (a SymbolAnchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopRight:
		return "top-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomRight:
		return "bottom-right"
	}
	return "Invalid(" + strconv.Itoa(int(a)) + ")"
}

// AnchorAlignment returns the horizontal and vertical fractions of the label's extent that lie left of and above the anchor respectively.
func AnchorAlignment(anchor SymbolAnchor) (float64, float64) {
	h, v := 0.5, 0.5
	switch anchor {
	case AnchorRight, AnchorTopRight, AnchorBottomRight:
		h = 1.0
	case AnchorLeft, AnchorTopLeft, AnchorBottomLeft:
		h = 0.0
	}
	switch anchor {
	case AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		v = 1.0
	case AnchorTop, AnchorTopLeft, AnchorTopRight:
		v = 0.0
	}
	return h, v
}

// JustifyForAnchor returns the justification that matches the direction of the anchor.
func JustifyForAnchor(anchor SymbolAnchor) TextJustify {
	switch anchor {
	case AnchorRight, AnchorTopRight, AnchorBottomRight:
		return JustifyRight
	case AnchorLeft, AnchorTopLeft, AnchorBottomLeft:
		return JustifyLeft
	}
	return JustifyCenter
}

// IconTextFit specifies in which dimensions an icon is stretched to the text it accompanies.
type IconTextFit int

// see IconTextFit
const (
	FitNone IconTextFit = iota
	FitWidth
	FitHeight
	FitBoth
)

func (f IconTextFit) String() string {
	switch f {
	case FitNone:
		return "none"
	case FitWidth:
		return "width"
	case FitHeight:
		return "height"
	case FitBoth:
		return "both"
	}
	return "Invalid(" + strconv.Itoa(int(f)) + ")"
}

// SymbolPlacement specifies whether a label is placed at a point or along a line.
type SymbolPlacement int

// see SymbolPlacement
const (
	PointPlacement SymbolPlacement = iota
	LinePlacement
	LineCenterPlacement
)

func (p SymbolPlacement) String() string {
	switch p {
	case PointPlacement:
		return "point"
	case LinePlacement:
		return "line"
	case LineCenterPlacement:
		return "line-center"
	}
	return "Invalid(" + strconv.Itoa(int(p)) + ")"
}

// Alignment specifies whether a label rotates with the map or stays aligned to the viewport.
type Alignment int

// see Alignment
const (
	AlignAuto Alignment = iota
	AlignMap
	AlignViewport
)

func (a Alignment) String() string {
	switch a {
	case AlignAuto:
		return "auto"
	case AlignMap:
		return "map"
	case AlignViewport:
		return "viewport"
	}
	return "Invalid(" + strconv.Itoa(int(a)) + ")"
}

// SymbolContent is a set of flags of what a symbol instance draws.
type SymbolContent uint8

// see SymbolContent
const (
	ContentNone SymbolContent = 0
	ContentText SymbolContent = 1 << (iota - 1)
	ContentIconRGBA
	ContentIconSDF
)

func (c SymbolContent) String() string {
	if c == ContentNone {
		return "None"
	}
	names := []string{}
	if c&ContentText != 0 {
		names = append(names, "Text")
	}
	if c&ContentIconRGBA != 0 {
		names = append(names, "IconRGBA")
	}
	if c&ContentIconSDF != 0 {
		names = append(names, "IconSDF")
	}
	if c&^(ContentText|ContentIconRGBA|ContentIconSDF) != 0 {
		return "Invalid(" + strconv.Itoa(int(c)) + ")"
	}
	return strings.Join(names, "|")
}

// MapMode specifies how tiles are rendered, which decides whether symbols anchored outside a tile are kept.
type MapMode int

// see MapMode
const (
	ContinuousMode MapMode = iota
	StaticMode
	TileMode
)

func (m MapMode) String() string {
	switch m {
	case ContinuousMode:
		return "continuous"
	case StaticMode:
		return "static"
	case TileMode:
		return "tile"
	}
	return "Invalid(" + strconv.Itoa(int(m)) + ")"
}

////////////////////////////////////////////////////////////////

type enum interface {
	~int
	String() string
}

// parseEnum returns the value whose name equals s, trying values from zero upwards until an invalid value is reached.
func parseEnum[T enum](s string) (T, error) {
	for v := T(0); !strings.HasPrefix(v.String(), "Invalid("); v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}

// ParseSymbolAnchor parses an anchor name such as "top-left".
func ParseSymbolAnchor(s string) (SymbolAnchor, error) {
	return parseEnum[SymbolAnchor](s)
}

// ParseTextJustify parses a justification name such as "auto".
func ParseTextJustify(s string) (TextJustify, error) {
	return parseEnum[TextJustify](s)
}

// ParseIconTextFit parses a fit name such as "both".
func ParseIconTextFit(s string) (IconTextFit, error) {
	return parseEnum[IconTextFit](s)
}

// ParseSymbolPlacement parses a placement name such as "line-center".
func ParseSymbolPlacement(s string) (SymbolPlacement, error) {
	return parseEnum[SymbolPlacement](s)
}

// ParseMapMode parses a map mode name such as "tile".
func ParseMapMode(s string) (MapMode, error) {
	return parseEnum[MapMode](s)
}
