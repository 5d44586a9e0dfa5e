package main

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/maplabel"
	"github.com/tdewolff/maplabel/atlas"
	"github.com/tdewolff/maplabel/text"
)

// markerSize is the size in pixels of the icon drawn for points of interest.
const markerSize = 18

type OSM struct {
	Font      string  `short:"f" desc:"Font file, Latin Modern Sans by default"`
	Index     int     `short:"i" desc:"Font index for font collections"`
	Size      float64 `short:"s" default:"16" desc:"Text size in pixels"`
	Tag       string  `short:"t" default:"name" desc:"Tag holding the label text"`
	Placement string  `default:"line-center" desc:"Placement of labels on ways"`
	Mode      string  `default:"continuous" desc:"Map mode"`
	Icons     bool    `desc:"Add a marker icon to points of interest"`
	Output    string  `short:"o" desc:"Output PNG file"`
	Width     int     `default:"1024" desc:"Output image width and height in pixels"`
	Verbose   bool    `short:"v" desc:"Log to standard error"`
	Input     string  `index:"0" desc:"OSM XML file"`
}

func (cmd *OSM) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	placement, err := maplabel.ParseSymbolPlacement(cmd.Placement)
	if err != nil {
		return fmt.Errorf("placement: %w", err)
	}
	mode, err := maplabel.ParseMapMode(cmd.Mode)
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}

	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	o := &osm.OSM{}
	if err := xml.Unmarshal(b, o); err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}
	fc, err := osmgeojson.Convert(o, osmgeojson.NoMeta(true))
	if err != nil {
		return err
	}

	points, lines := cmd.features(fc)
	if len(points) == 0 && len(lines) == 0 {
		return fmt.Errorf("no features with a %q tag", cmd.Tag)
	}
	toTile := tileProjection(slices.Concat(points, lines))
	for i := range points {
		points[i].Geometry = project.Geometry(points[i].Geometry, toTile)
	}
	for i := range lines {
		lines[i].Geometry = project.Geometry(lines[i].Geometry, toTile)
	}

	sb := strings.Builder{}
	for _, f := range slices.Concat(points, lines) {
		if f.Text != nil {
			sb.WriteString(f.Text.String())
		}
	}
	glyphs, positions, err := loadGlyphs(cmd.Font, cmd.Index, []rune(sb.String()))
	if err != nil {
		return err
	}
	images := atlas.ImagePositions{
		"marker": {
			PixelRatio: 1.0,
			PaddedRect: atlas.Rect{W: markerSize + 2*atlas.ImagePadding, H: markerSize + 2*atlas.ImagePadding},
		},
	}

	opts := maplabel.DefaultLayoutOptions()
	opts.TextSize = cmd.Size
	opts.TextSizeAtBucketZoom = cmd.Size
	opts.TextVariableAnchor = []maplabel.SymbolAnchor{maplabel.AnchorTop, maplabel.AnchorBottom, maplabel.AnchorLeft, maplabel.AnchorRight}
	opts.TextJustify = maplabel.JustifyAuto
	opts.TextRadialOffset = 1.0
	opts.Mode = mode
	opts.SourceLayerName = "poi"
	pointLayout := maplabel.NewSymbolLayout(opts)
	pointLayout.Prepare(points, glyphs, positions, images)

	opts = maplabel.DefaultLayoutOptions()
	opts.TextSize = cmd.Size
	opts.TextSizeAtBucketZoom = cmd.Size
	opts.SymbolPlacement = placement
	opts.Mode = mode
	opts.SourceLayerName = "transportation"
	lineLayout := maplabel.NewSymbolLayout(opts)
	lineLayout.Prepare(lines, glyphs, positions, images)

	for _, l := range []*maplabel.SymbolLayout{pointLayout, lineLayout} {
		fmt.Printf("%s: %d symbols\n", l.SourceLayerName, len(l.Instances))
		for _, s := range l.Instances {
			fmt.Printf("  %-32q %-14v anchor=%v text=%d icon=%d\n", s.Key, s.Content, s.Anchor.Point, len(s.TextCollisionFeature.Boxes), len(s.IconCollisionFeature.Boxes))
		}
	}

	if cmd.Output != "" {
		return render(cmd.Output, cmd.Width, slices.Concat(points, lines), pointLayout, lineLayout)
	}
	return nil
}

// features returns the labeled features of the collection, split into points and lines. Areas are labeled at their centroid.
func (cmd *OSM) features(fc *geojson.FeatureCollection) ([]maplabel.SymbolFeature, []maplabel.SymbolFeature) {
	var points, lines []maplabel.SymbolFeature
	for i, f := range fc.Features {
		tags := featureTags(f.Properties)
		feature := maplabel.SymbolFeature{
			Index:    i,
			Geometry: f.Geometry,
		}
		if name := tags[cmd.Tag]; name != "" {
			feature.Text = text.NewTaggedStringFromText(name, text.NewSectionOptions(1.0, fontStack, nil))
		}

		switch g := f.Geometry.(type) {
		case orb.Point:
			if cmd.Icons && (tags["amenity"] != "" || tags["shop"] != "") {
				feature.Icon = "marker"
			}
		case orb.Polygon, orb.MultiPolygon:
			feature.Geometry, _ = planar.CentroidArea(g)
		case orb.LineString, orb.MultiLineString:
			if feature.Text != nil {
				lines = append(lines, feature)
			}
			continue
		default:
			continue
		}
		if feature.Text != nil || feature.Icon != "" {
			points = append(points, feature)
		}
	}
	return points, lines
}

func featureTags(props geojson.Properties) map[string]string {
	switch tags := props["tags"].(type) {
	case map[string]string:
		return tags
	case osm.Tags:
		return tags.Map()
	case map[string]interface{}:
		m := make(map[string]string, len(tags))
		for k, v := range tags {
			if s, ok := v.(string); ok {
				m[k] = s
			}
		}
		return m
	}
	return nil
}

// tileProjection returns the projection from longitude and latitude to tile units so that all features fit in one tile.
func tileProjection(features []maplabel.SymbolFeature) orb.Projection {
	bound := project.Bound(features[0].Geometry.Bound(), project.WGS84.ToMercator)
	for _, f := range features[1:] {
		bound = bound.Union(project.Bound(f.Geometry.Bound(), project.WGS84.ToMercator))
	}

	scale := 1.0
	if size := math.Max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom()); 0.0 < size {
		scale = maplabel.Extent / size
	}
	return func(p orb.Point) orb.Point {
		p = project.WGS84.ToMercator(p)
		return orb.Point{(p[0] - bound.Left()) * scale, (bound.Top() - p[1]) * scale}
	}
}
