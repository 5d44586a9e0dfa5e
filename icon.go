package maplabel

import (
	"github.com/tdewolff/maplabel/atlas"
)

// Padding is extra space around a box in layout units.
type Padding struct {
	Left, Top, Right, Bottom float64
}

// IsZero returns true if there is no padding on any side.
func (p Padding) IsZero() bool {
	return p.Left == 0.0 && p.Top == 0.0 && p.Right == 0.0 && p.Bottom == 0.0
}

// PositionedIcon is an icon placed relative to its anchor in layout units.
type PositionedIcon struct {
	Image                    atlas.ImagePosition
	Top, Bottom, Left, Right float64

	// CollisionPadding is added around the collision box, it is the distance from the content area to the edges of the image.
	CollisionPadding Padding
}

// ShapeIcon places the image relative to the anchor with the given offset.
func ShapeIcon(image atlas.ImagePosition, offset Point, anchor SymbolAnchor) PositionedIcon {
	hAlign, vAlign := AnchorAlignment(anchor)
	w, h := image.DisplaySize()
	left := offset.X - w*hAlign
	top := offset.Y - h*vAlign

	var padding Padding
	if content := image.Content; content != nil {
		padding.Left = content.Left / image.PixelRatio
		padding.Top = content.Top / image.PixelRatio
		padding.Right = w - content.Right/image.PixelRatio
		padding.Bottom = h - content.Bottom/image.PixelRatio
	}

	return PositionedIcon{
		Image:            image,
		Top:              top,
		Bottom:           top + h,
		Left:             left,
		Right:            left + w,
		CollisionPadding: padding,
	}
}

// FitIconToText updates the icon's bounds to the bounds of the shaped text, ignoring the icon's anchor. The icon is centered on the text and stretched in the dimensions given by fit. The padding is given as top, right, bottom, and left.
func (icon *PositionedIcon) FitIconToText(shaping Shaping, fit IconTextFit, padding [4]float64, offset Point, fontScale float64) {
	if fit == FitNone {
		panic(ErrNoTextFit)
	}
	w, h := icon.Image.DisplaySize()

	textLeft := shaping.Left * fontScale
	textRight := shaping.Right * fontScale
	if fit == FitWidth || fit == FitBoth {
		icon.Left = offset.X + textLeft - padding[3]
		icon.Right = offset.X + textRight + padding[1]
	} else {
		icon.Left = offset.X + (textLeft+textRight-w)/2.0
		icon.Right = icon.Left + w
	}

	textTop := shaping.Top * fontScale
	textBottom := shaping.Bottom * fontScale
	if fit == FitHeight || fit == FitBoth {
		icon.Top = offset.Y + textTop - padding[0]
		icon.Bottom = offset.Y + textBottom + padding[2]
	} else {
		icon.Top = offset.Y + (textTop+textBottom-h)/2.0
		icon.Bottom = icon.Top + h
	}
}
