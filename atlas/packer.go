package atlas

// ShelfPacker packs rectangles into horizontal shelves of an atlas with fixed width and height. Items are placed left-to-right on the first shelf that fits, a new shelf is started below the last one otherwise.
type ShelfPacker struct {
	width, height int
	padding       int
	shelves       []shelf
}

type shelf struct {
	y, height, x int
}

// NewShelfPacker returns a packer for an atlas of the given size.
func NewShelfPacker(width, height, padding int) *ShelfPacker {
	return &ShelfPacker{
		width:   width,
		height:  height,
		padding: padding,
	}
}

// Pack returns the position of a w by h rectangle, or false if the atlas is full.
func (p *ShelfPacker) Pack(w, h int) (Rect, bool) {
	pw, ph := w+p.padding, h+p.padding
	for i := range p.shelves {
		s := &p.shelves[i]
		if p.width < s.x+pw {
			continue
		}
		if s.height < h {
			// only the last shelf can grow
			if i != len(p.shelves)-1 || p.height < s.y+ph {
				continue
			}
			s.height = h
		}
		r := Rect{uint16(s.x), uint16(s.y), uint16(w), uint16(h)}
		s.x += pw
		return r, true
	}

	y := 0
	if 0 < len(p.shelves) {
		last := p.shelves[len(p.shelves)-1]
		y = last.y + last.height + p.padding
	}
	if p.height < y+ph || p.width < pw {
		return Rect{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: h, x: pw})
	return Rect{0, uint16(y), uint16(w), uint16(h)}, true
}

// Reset removes all packed rectangles.
func (p *ShelfPacker) Reset() {
	p.shelves = p.shelves[:0]
}
