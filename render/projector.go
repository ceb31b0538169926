package render

import (
	"math"

	"github.com/rhartert/transit-router/transit"
)

const epsilon = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < epsilon
}

// projector maps geographic coordinates onto a width x height canvas so
// that the given points fit inside the padded area. Longitudes grow to the
// right and latitudes grow upwards. The same zoom is used on both axes.
type projector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

func newProjector(points []transit.Coordinates, width, height, padding float64) projector {
	p := projector{padding: padding}
	if len(points) == 0 {
		return p
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, c := range points[1:] {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLng = math.Min(minLng, c.Lng)
		maxLng = math.Max(maxLng, c.Lng)
	}
	p.minLng = minLng
	p.maxLat = maxLat

	zoomX, okX := 0.0, !isZero(maxLng-minLng)
	if okX {
		zoomX = (width - 2*padding) / (maxLng - minLng)
	}
	zoomY, okY := 0.0, !isZero(maxLat-minLat)
	if okY {
		zoomY = (height - 2*padding) / (maxLat - minLat)
	}

	switch {
	case okX && okY:
		p.zoom = math.Min(zoomX, zoomY)
	case okX:
		p.zoom = zoomX
	case okY:
		p.zoom = zoomY
	}
	return p
}

func (p projector) project(c transit.Coordinates) Point {
	return Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
