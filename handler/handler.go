// Package handler answers statistics requests on a transit network.
package handler

import (
	"errors"
	"log"
	"sync"

	"github.com/rhartert/transit-router/parser"
	"github.com/rhartert/transit-router/render"
	"github.com/rhartert/transit-router/transit"
)

const errNotFound = "not found"

// ErrorAnswer is the answer to a request about an unknown route or stop, or
// to a route request between stops that are not connected.
type ErrorAnswer struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

// BusAnswer is the answer to a Bus request.
type BusAnswer struct {
	RequestID       int     `json:"request_id"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
	RouteLength     int     `json:"route_length"`
	Curvature       float64 `json:"curvature"`
}

// StopAnswer is the answer to a Stop request.
type StopAnswer struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

// RouteAnswer is the answer to a Route request.
type RouteAnswer struct {
	RequestID int         `json:"request_id"`
	TotalTime float64     `json:"total_time"`
	Items     []RouteItem `json:"items"`
}

// MapAnswer is the answer to a Map request. Map is an SVG document.
type MapAnswer struct {
	RequestID int    `json:"request_id"`
	Map       string `json:"map"`
}

// RouteItem is one step of a RouteAnswer. Wait items set StopName, Bus items
// set Bus and SpanCount.
type RouteItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

// Handler answers requests using a catalogue and a router built from it.
// Handlers are read-only and can serve concurrent requests.
type Handler struct {
	catalogue *transit.Catalogue
	router    *transit.Router
	renderer  *render.Renderer

	mapOnce sync.Once
	mapSVG  string
}

// New returns a Handler over the given catalogue and router. Map requests
// are answered with "not found" when the renderer is nil.
func New(c *transit.Catalogue, r *transit.Router, m *render.Renderer) *Handler {
	return &Handler{
		catalogue: c,
		router:    r,
		renderer:  m,
	}
}

// AnswerAll answers the requests in order.
func (h *Handler) AnswerAll(requests []parser.StatRequest) []any {
	answers := make([]any, len(requests))
	for i, req := range requests {
		answers[i] = h.Answer(req)
	}
	return answers
}

// Answer answers a single request.
func (h *Handler) Answer(req parser.StatRequest) any {
	switch req.Type {
	case parser.TypeBus:
		return h.Bus(req.ID, req.Name)
	case parser.TypeStop:
		return h.Stop(req.ID, req.Name)
	case parser.TypeRoute:
		return h.Route(req.ID, req.From, req.To)
	case parser.TypeMap:
		return h.Map(req.ID)
	default:
		return ErrorAnswer{RequestID: req.ID, ErrorMessage: "unsupported request type " + req.Type}
	}
}

// Bus returns the statistics of the named route.
func (h *Handler) Bus(id int, name string) any {
	stats, err := h.catalogue.RouteStats(name)
	if err != nil {
		if !errors.Is(err, transit.ErrRouteNotFound) {
			log.Printf("request %d: %s", id, err)
		}
		return ErrorAnswer{RequestID: id, ErrorMessage: errNotFound}
	}
	return BusAnswer{
		RequestID:       id,
		StopCount:       stats.StopCount,
		UniqueStopCount: stats.UniqueStopCount,
		RouteLength:     stats.RouteLength,
		Curvature:       stats.Curvature,
	}
}

// Stop returns the routes serving the named stop.
func (h *Handler) Stop(id int, name string) any {
	routes, ok := h.catalogue.StopRoutes(name)
	if !ok {
		return ErrorAnswer{RequestID: id, ErrorMessage: errNotFound}
	}
	return StopAnswer{RequestID: id, Buses: routes}
}

// Route returns a minimum time itinerary between two stops.
func (h *Handler) Route(id int, from string, to string) any {
	it, err := h.router.Route(from, to)
	if err != nil {
		if !errors.Is(err, transit.ErrStopNotFound) && !errors.Is(err, transit.ErrNoRoute) {
			log.Printf("request %d: %s", id, err)
		}
		return ErrorAnswer{RequestID: id, ErrorMessage: errNotFound}
	}

	answer := RouteAnswer{
		RequestID: id,
		TotalTime: it.TotalTime,
		Items:     make([]RouteItem, len(it.Items)),
	}
	for i, item := range it.Items {
		ri := RouteItem{Type: item.Kind.String(), Time: item.Time}
		switch item.Kind {
		case transit.WaitItem:
			ri.StopName = item.StopName
		case transit.RideItem:
			ri.Bus = item.RouteName
			ri.SpanCount = item.SpanCount
		}
		answer.Items[i] = ri
	}
	return answer
}

// Map returns the map of the network. The map is drawn on the first call
// only since the catalogue never changes.
func (h *Handler) Map(id int) any {
	svg, ok := h.MapSVG()
	if !ok {
		return ErrorAnswer{RequestID: id, ErrorMessage: errNotFound}
	}
	return MapAnswer{RequestID: id, Map: svg}
}

// MapSVG returns the map of the network as an SVG document, or false if the
// handler has no renderer.
func (h *Handler) MapSVG() (string, bool) {
	if h.renderer == nil {
		return "", false
	}
	h.mapOnce.Do(func() {
		h.mapSVG = h.renderer.Render(h.catalogue).String()
	})
	return h.mapSVG, true
}
