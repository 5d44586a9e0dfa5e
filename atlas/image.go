package atlas

// ImagePadding is the number of transparent pixels around every image in the atlas.
const ImagePadding = 1

// ImageStretch is a zone [Start,End) of an image in pixels that may be stretched.
type ImageStretch struct {
	Start, End float64
}

// ImageStretches lists the stretchable zones along one axis.
type ImageStretches []ImageStretch

// ImageContent is the area of an image in pixels that text may be fitted into.
type ImageContent struct {
	Left, Top, Right, Bottom float64
}

// ImagePosition is an icon or embedded text image as packed into the atlas.
type ImagePosition struct {
	PixelRatio float64
	PaddedRect Rect
	StretchX   ImageStretches
	StretchY   ImageStretches
	Content    *ImageContent
	SDF        bool
}

// DisplaySize returns the size of the image without padding in display pixels.
func (p ImagePosition) DisplaySize() (float64, float64) {
	w := float64(p.PaddedRect.W) - 2*ImagePadding
	h := float64(p.PaddedRect.H) - 2*ImagePadding
	return w / p.PixelRatio, h / p.PixelRatio
}

// TopLeft returns the top-left corner of the image without padding in the atlas.
func (p ImagePosition) TopLeft() (uint16, uint16) {
	return p.PaddedRect.X + ImagePadding, p.PaddedRect.Y + ImagePadding
}

// BottomRight returns the bottom-right corner of the image without padding in the atlas.
func (p ImagePosition) BottomRight() (uint16, uint16) {
	return p.PaddedRect.X + p.PaddedRect.W - ImagePadding, p.PaddedRect.Y + p.PaddedRect.H - ImagePadding
}

// ImagePositions maps image IDs to their atlas positions.
type ImagePositions map[string]ImagePosition

// Lookup returns the position of the image with the given ID.
func (m ImagePositions) Lookup(id string) (ImagePosition, bool) {
	pos, ok := m[id]
	return pos, ok
}
