// Package render draws the map of a transit network as an SVG image.
package render

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rhartert/transit-router/transit"
)

// Settings controls the size and the look of the map. Lengths are in pixels.
type Settings struct {
	Width   float64
	Height  float64
	Padding float64

	LineWidth  float64
	StopRadius float64

	BusLabelFontSize  int
	BusLabelOffset    Point
	StopLabelFontSize int
	StopLabelOffset   Point

	UnderlayerColor Color
	UnderlayerWidth float64

	// Routes are colored with the palette in turn, in alphabetical order.
	ColorPalette []Color
}

// ErrInvalidSettings is returned by NewRenderer for settings that cannot
// produce a map.
var ErrInvalidSettings = errors.New("invalid render settings")

func (s Settings) validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative canvas size %vx%v", ErrInvalidSettings, s.Width, s.Height)
	}
	if s.Padding < 0 || s.Padding >= math.Min(s.Width, s.Height)/2 {
		return fmt.Errorf("%w: padding %v does not fit a %vx%v canvas", ErrInvalidSettings, s.Padding, s.Width, s.Height)
	}
	if len(s.ColorPalette) == 0 {
		return fmt.Errorf("%w: empty color palette", ErrInvalidSettings)
	}
	return nil
}

// Renderer draws maps with fixed settings.
type Renderer struct {
	settings Settings
}

// NewRenderer returns a Renderer with the given settings.
func NewRenderer(s Settings) (*Renderer, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Renderer{settings: s}, nil
}

// Render draws the catalogue's routes and the stops they serve. Layers are
// drawn from bottom to top: route lines, route labels, stop circles and stop
// labels. Routes and stops are drawn in alphabetical order and stops that
// are not served by any route are left out.
func (r *Renderer) Render(c *transit.Catalogue) *Document {
	routes := make([]*transit.Route, len(c.Routes()))
	copy(routes, c.Routes())
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })

	stops := []*transit.Stop{}
	for _, s := range c.Stops() {
		if names, _ := c.StopRoutes(s.Name); len(names) > 0 {
			stops = append(stops, s)
		}
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Name < stops[j].Name })

	coords := make([]transit.Coordinates, len(stops))
	for i, s := range stops {
		coords[i] = s.Coordinates
	}
	proj := newProjector(coords, r.settings.Width, r.settings.Height, r.settings.Padding)

	doc := &Document{}
	r.drawRouteLines(doc, proj, routes)
	r.drawRouteLabels(doc, proj, routes)
	r.drawStopCircles(doc, proj, stops)
	r.drawStopLabels(doc, proj, stops)
	return doc
}

func (r *Renderer) routeColor(i int) Color {
	return r.settings.ColorPalette[i%len(r.settings.ColorPalette)]
}

func (r *Renderer) drawRouteLines(doc *Document, proj projector, routes []*transit.Route) {
	for i, route := range routes {
		seq := route.Effective()
		line := polyline{
			paint: paint{
				Fill:           NoneColor,
				Stroke:         r.routeColor(i),
				StrokeWidth:    r.settings.LineWidth,
				StrokeLineCap:  "round",
				StrokeLineJoin: "round",
			},
			Points: make([]Point, len(seq)),
		}
		for j, s := range seq {
			line.Points[j] = proj.project(s.Coordinates)
		}
		doc.add(line)
	}
}

// labelPair returns a label and its underlayer, which outlines the label so
// that it stays readable over the lines it covers.
func (r *Renderer) labelPair(label text, fill Color) (text, text) {
	under := label
	under.paint = paint{
		Fill:           r.settings.UnderlayerColor,
		Stroke:         r.settings.UnderlayerColor,
		StrokeWidth:    r.settings.UnderlayerWidth,
		StrokeLineCap:  "round",
		StrokeLineJoin: "round",
	}
	label.paint = paint{Fill: fill}
	return under, label
}

func (r *Renderer) drawRouteLabels(doc *Document, proj projector, routes []*transit.Route) {
	for i, route := range routes {
		seq := route.Effective()
		ends := []Point{proj.project(seq[0].Coordinates)}
		if !route.IsRoundTrip {
			// The outbound terminus sits in the middle of the sequence.
			if end := proj.project(seq[(len(seq)-1)/2].Coordinates); end != ends[0] {
				ends = append(ends, end)
			}
		}

		for _, p := range ends {
			under, label := r.labelPair(text{
				Position:   p,
				Offset:     r.settings.BusLabelOffset,
				FontSize:   r.settings.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Data:       route.Name,
			}, r.routeColor(i))
			doc.add(under)
			doc.add(label)
		}
	}
}

func (r *Renderer) drawStopCircles(doc *Document, proj projector, stops []*transit.Stop) {
	for _, s := range stops {
		doc.add(circle{
			paint:  paint{Fill: "white"},
			Center: proj.project(s.Coordinates),
			Radius: r.settings.StopRadius,
		})
	}
}

func (r *Renderer) drawStopLabels(doc *Document, proj projector, stops []*transit.Stop) {
	for _, s := range stops {
		under, label := r.labelPair(text{
			Position:   proj.project(s.Coordinates),
			Offset:     r.settings.StopLabelOffset,
			FontSize:   r.settings.StopLabelFontSize,
			FontFamily: "Verdana",
			Data:       s.Name,
		}, "black")
		doc.add(under)
		doc.add(label)
	}
}
