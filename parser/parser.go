// Package parser reads the JSON document describing a transit network and
// the statistics requests to answer on it.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rhartert/transit-router/render"
	"github.com/rhartert/transit-router/transit"
)

// Request types.
const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
	TypeMap   = "Map"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateRenderSettings, RenderSettings{})
	v.RegisterStructValidation(validateColor, Color{})
	return v
}

// Document is the input of the program.
type Document struct {
	BaseRequests    []BaseRequest    `json:"base_requests" validate:"dive"`
	RoutingSettings *RoutingSettings `json:"routing_settings"`
	RenderSettings  *RenderSettings  `json:"render_settings"`
	StatRequests    []StatRequest    `json:"stat_requests" validate:"dive"`
}

// BaseRequest describes either a stop and its road distances to other stops
// (Type "Stop") or a bus route (Type "Bus").
type BaseRequest struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`
	Name string `json:"name" validate:"required"`

	Latitude      float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64        `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int `json:"road_distances" validate:"dive,gte=0"`

	Stops       []string `json:"stops" validate:"required_if=Type Bus,dive,required"`
	IsRoundTrip bool     `json:"is_roundtrip"`
}

// RoutingSettings holds the bus wait time in minutes and the bus velocity in
// km/h.
type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gte=1,lte=1000"`
	BusVelocity float64 `json:"bus_velocity" validate:"gte=1,lte=1000"`
}

// RenderSettings controls how Map requests draw the network. Offsets are
// [dx, dy] pairs.
type RenderSettings struct {
	Width   float64 `json:"width" validate:"gte=0,lte=100000"`
	Height  float64 `json:"height" validate:"gte=0,lte=100000"`
	Padding float64 `json:"padding" validate:"gte=0"`

	LineWidth  float64 `json:"line_width" validate:"gte=0,lte=100000"`
	StopRadius float64 `json:"stop_radius" validate:"gte=0,lte=100000"`

	BusLabelFontSize  int       `json:"bus_label_font_size" validate:"gte=0,lte=100000"`
	BusLabelOffset    []float64 `json:"bus_label_offset" validate:"len=2,dive,gte=-100000,lte=100000"`
	StopLabelFontSize int       `json:"stop_label_font_size" validate:"gte=0,lte=100000"`
	StopLabelOffset   []float64 `json:"stop_label_offset" validate:"len=2,dive,gte=-100000,lte=100000"`

	UnderlayerColor *Color  `json:"underlayer_color" validate:"required"`
	UnderlayerWidth float64 `json:"underlayer_width" validate:"gte=0,lte=100000"`

	ColorPalette []Color `json:"color_palette" validate:"required,min=1,dive"`
}

// validateRenderSettings checks that the padding leaves room to draw.
func validateRenderSettings(sl validator.StructLevel) {
	rs := sl.Current().Interface().(RenderSettings)
	if rs.Padding >= math.Min(rs.Width, rs.Height)/2 {
		sl.ReportError(rs.Padding, "padding", "Padding", "padding", "")
	}
}

// Color is either a color name such as "red", an [r, g, b] triple or an
// [r, g, b, opacity] quadruple. Channels are integers in [0, 255] and the
// opacity is in [0, 1].
type Color struct {
	Name     string
	Channels []float64
}

// UnmarshalJSON accepts a JSON string or a JSON array of numbers.
func (c *Color) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &c.Name); err == nil {
		return nil
	}
	c.Name = ""
	if err := json.Unmarshal(b, &c.Channels); err != nil {
		return fmt.Errorf("color must be a string or an array of numbers, got %s", b)
	}
	return nil
}

func validateColor(sl validator.StructLevel) {
	c := sl.Current().Interface().(Color)
	if c.Name != "" {
		return
	}
	if n := len(c.Channels); n != 3 && n != 4 {
		sl.ReportError(c.Channels, "color", "Channels", "color", "")
		return
	}
	for _, v := range c.Channels[:3] {
		if v != math.Trunc(v) || v < 0 || v > 255 {
			sl.ReportError(c.Channels, "color", "Channels", "rgb", "")
			return
		}
	}
	if len(c.Channels) == 4 && (c.Channels[3] < 0 || c.Channels[3] > 1) {
		sl.ReportError(c.Channels, "color", "Channels", "opacity", "")
	}
}

// Render converts a validated color.
func (c Color) Render() render.Color {
	switch len(c.Channels) {
	case 3:
		return render.RGB(uint8(c.Channels[0]), uint8(c.Channels[1]), uint8(c.Channels[2]))
	case 4:
		return render.RGBA(uint8(c.Channels[0]), uint8(c.Channels[1]), uint8(c.Channels[2]), c.Channels[3])
	default:
		return render.Color(c.Name)
	}
}

// StatRequest is a query to answer. Bus and Stop requests name the route or
// stop they are about, Route requests name the two stops to travel between.
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type" validate:"required,oneof=Stop Bus Route Map"`
	Name string `json:"name" validate:"required_if=Type Stop,required_if=Type Bus"`
	From string `json:"from" validate:"required_if=Type Route"`
	To   string `json:"to" validate:"required_if=Type Route"`
}

// ParseFile parses the document stored in the given file.
func ParseFile(filepath string) (*Document, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and validates a document.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// ParseStatRequests reads and validates a JSON array of stat requests.
func ParseStatRequests(r io.Reader) ([]StatRequest, error) {
	requests := []StatRequest{}
	if err := json.NewDecoder(r).Decode(&requests); err != nil {
		return nil, fmt.Errorf("invalid requests: %w", err)
	}
	for i := range requests {
		if err := validate.Struct(requests[i]); err != nil {
			return nil, fmt.Errorf("invalid request %d: %w", i, err)
		}
	}
	return requests, nil
}

// Catalogue builds the catalogue described by the document's base requests.
// Stops are added first, then road distances and finally bus routes so that
// requests can reference stops declared later in the document.
func (d *Document) Catalogue() (*transit.Catalogue, error) {
	c := transit.NewCatalogue()

	for _, br := range d.BaseRequests {
		if br.Type != TypeStop {
			continue
		}
		coords := transit.Coordinates{Lat: br.Latitude, Lng: br.Longitude}
		if err := c.AddStop(br.Name, coords); err != nil {
			return nil, err
		}
	}

	for _, br := range d.BaseRequests {
		if br.Type != TypeStop {
			continue
		}
		for to, meters := range br.RoadDistances {
			if err := c.AddDistance(br.Name, to, meters); err != nil {
				return nil, fmt.Errorf("stop %q: %w", br.Name, err)
			}
		}
	}

	for _, br := range d.BaseRequests {
		if br.Type != TypeBus {
			continue
		}
		if err := c.AddRoute(br.Name, br.Stops, br.IsRoundTrip); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Settings returns the routing settings of the document, if any.
func (d *Document) Settings() (transit.Settings, bool) {
	if d.RoutingSettings == nil {
		return transit.Settings{}, false
	}
	return transit.Settings{
		BusWaitTime: d.RoutingSettings.BusWaitTime,
		BusVelocity: d.RoutingSettings.BusVelocity,
	}, true
}

// MapSettings returns the render settings of the document, if any.
func (d *Document) MapSettings() (render.Settings, bool) {
	rs := d.RenderSettings
	if rs == nil {
		return render.Settings{}, false
	}

	palette := make([]render.Color, len(rs.ColorPalette))
	for i, c := range rs.ColorPalette {
		palette[i] = c.Render()
	}
	return render.Settings{
		Width:             rs.Width,
		Height:            rs.Height,
		Padding:           rs.Padding,
		LineWidth:         rs.LineWidth,
		StopRadius:        rs.StopRadius,
		BusLabelFontSize:  rs.BusLabelFontSize,
		BusLabelOffset:    render.Point{X: rs.BusLabelOffset[0], Y: rs.BusLabelOffset[1]},
		StopLabelFontSize: rs.StopLabelFontSize,
		StopLabelOffset:   render.Point{X: rs.StopLabelOffset[0], Y: rs.StopLabelOffset[1]},
		UnderlayerColor:   rs.UnderlayerColor.Render(),
		UnderlayerWidth:   rs.UnderlayerWidth,
		ColorPalette:      palette,
	}, true
}
