package text

import "github.com/benoitkugler/textlayout/fribidi"

// visualOrder maps the code points of a single line from logical to visual order. It returns for every visual position the logical position.
func visualOrder(rs []rune) []int {
	pbase := fribidi.CharType(fribidi.ON)
	vis, _ := fribidi.LogicalToVisual(fribidi.DefaultFlags, rs, &pbase)

	mapV2L := make([]int, len(vis.VisualToLogical))
	for i, pos := range vis.VisualToLogical {
		mapV2L[i] = int(pos)
	}
	return mapV2L
}
