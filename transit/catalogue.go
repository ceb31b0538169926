// Package transit models a static public transport network and answers
// statistics and minimum time itinerary queries over it.
package transit

import (
	"fmt"
	"slices"

	"github.com/rhartert/sparsesets"
)

// Stop is a named location served by routes. ID is the position of the stop
// in the catalogue's insertion order.
type Stop struct {
	ID          int
	Name        string
	Coordinates Coordinates
}

// Route is a named sequence of stops travelled by buses.
//
// A round trip route already ends where it starts. Any other route is
// travelled there and back: stops A, B, C are effectively visited as
// A, B, C, B, A.
type Route struct {
	Name        string
	Stops       []*Stop
	IsRoundTrip bool

	effective []*Stop
}

// Effective returns the sequence of stops visited by a bus on the route.
//
// Important: the slice is shared with the route and should only be used in
// read-only operations.
func (r *Route) Effective() []*Stop {
	return r.effective
}

func effectiveStops(stops []*Stop, isRoundTrip bool) []*Stop {
	if isRoundTrip {
		return stops
	}
	seq := make([]*Stop, 0, len(stops)*2)
	seq = append(seq, stops...)
	for i := len(stops) - 2; i >= 0; i-- {
		seq = append(seq, stops[i])
	}
	return seq
}

// RouteStats holds aggregate statistics of a route. Lengths are in meters.
type RouteStats struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	GeoLength       float64
	Curvature       float64
}

// Catalogue owns the stops, routes and road distances of a network.
//
// Stops and routes are listed in insertion order. A Catalogue must not be
// modified once it has been handed to BuildRouter; from then on it can be
// read concurrently.
type Catalogue struct {
	stops       []*Stop
	stopsByName map[string]*Stop

	routes       []*Route
	routesByName map[string]*Route

	// Names of the routes serving each stop, indexed by stop ID.
	stopRoutes []map[string]bool

	// Road distances in meters, keyed by (from, to) stop IDs.
	distances map[[2]int]int
}

// NewCatalogue returns an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		stopsByName:  map[string]*Stop{},
		routesByName: map[string]*Route{},
		distances:    map[[2]int]int{},
	}
}

// AddStop adds a new stop to the catalogue. Stop names are unique: adding a
// stop whose name is already known fails with ErrDuplicateStop.
func (c *Catalogue) AddStop(name string, coords Coordinates) error {
	if _, ok := c.stopsByName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	s := &Stop{
		ID:          len(c.stops),
		Name:        name,
		Coordinates: coords,
	}
	c.stops = append(c.stops, s)
	c.stopsByName[name] = s
	c.stopRoutes = append(c.stopRoutes, map[string]bool{})
	return nil
}

// AddRoute adds a new route visiting the given stops, which must all have
// been added to the catalogue beforehand.
func (c *Catalogue) AddRoute(name string, stopNames []string, isRoundTrip bool) error {
	if _, ok := c.routesByName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, name)
	}

	stops := make([]*Stop, len(stopNames))
	for i, sn := range stopNames {
		s, ok := c.stopsByName[sn]
		if !ok {
			return fmt.Errorf("route %q: %w: %q", name, ErrStopNotFound, sn)
		}
		stops[i] = s
	}

	r := &Route{
		Name:        name,
		Stops:       stops,
		IsRoundTrip: isRoundTrip,
		effective:   effectiveStops(stops, isRoundTrip),
	}
	if len(r.effective) < 2 {
		return fmt.Errorf("route %q: %w", name, ErrRouteTooShort)
	}

	c.routes = append(c.routes, r)
	c.routesByName[name] = r
	for _, s := range stops {
		c.stopRoutes[s.ID][name] = true
	}
	return nil
}

// AddDistance sets the road distance in meters from stop from to stop to.
// The distance in the other direction is left untouched.
func (c *Catalogue) AddDistance(from string, to string, meters int) error {
	if meters < 0 {
		return fmt.Errorf("distance from %q to %q must be non-negative, got %d", from, to, meters)
	}
	f, ok := c.stopsByName[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrStopNotFound, from)
	}
	t, ok := c.stopsByName[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrStopNotFound, to)
	}
	c.distances[[2]int{f.ID, t.ID}] = meters
	return nil
}

// Stop returns the stop with the given name, if any.
func (c *Catalogue) Stop(name string) (*Stop, bool) {
	s, ok := c.stopsByName[name]
	return s, ok
}

// Route returns the route with the given name, if any.
func (c *Catalogue) Route(name string) (*Route, bool) {
	r, ok := c.routesByName[name]
	return r, ok
}

// Stops returns all the stops in insertion order.
//
// Important: the slice is a view on the catalogue's internal structure and
// should only be used in read-only operations.
func (c *Catalogue) Stops() []*Stop {
	return c.stops
}

// Routes returns all the routes in insertion order.
//
// Important: the slice is a view on the catalogue's internal structure and
// should only be used in read-only operations.
func (c *Catalogue) Routes() []*Route {
	return c.routes
}

// Distance returns the road distance in meters from stop from to stop to.
// When only the opposite direction is known, its distance is returned
// instead. Distances declared in both directions are kept as they are and
// never reconciled.
func (c *Catalogue) Distance(from string, to string) (int, bool) {
	f, ok := c.stopsByName[from]
	if !ok {
		return 0, false
	}
	t, ok := c.stopsByName[to]
	if !ok {
		return 0, false
	}
	return c.distance(f, t)
}

func (c *Catalogue) distance(from *Stop, to *Stop) (int, bool) {
	if d, ok := c.distances[[2]int{from.ID, to.ID}]; ok {
		return d, true
	}
	d, ok := c.distances[[2]int{to.ID, from.ID}]
	return d, ok
}

// RouteStats computes the statistics of the named route. It fails with
// ErrRouteNotFound if there is no such route and with a MissingDistanceError
// if the road distance between two consecutive stops is unknown.
//
// Curvature is the ratio between the road length and the geographic length
// of the route. It is 0 when the geographic length is 0.
func (c *Catalogue) RouteStats(name string) (RouteStats, error) {
	r, ok := c.routesByName[name]
	if !ok {
		return RouteStats{}, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	seq := r.Effective()
	unique := sparsesets.New(len(c.stops))
	for _, s := range seq {
		if err := unique.Insert(s.ID); err != nil {
			return RouteStats{}, fmt.Errorf("route %q: %w", r.Name, err)
		}
	}

	stats := RouteStats{
		StopCount:       len(seq),
		UniqueStopCount: unique.Size(),
	}
	for i := 1; i < len(seq); i++ {
		d, ok := c.distance(seq[i-1], seq[i])
		if !ok {
			return RouteStats{}, &MissingDistanceError{
				Route: r.Name,
				From:  seq[i-1].Name,
				To:    seq[i].Name,
			}
		}
		stats.RouteLength += d
		stats.GeoLength += GeoDistance(seq[i-1].Coordinates, seq[i].Coordinates)
	}
	if stats.GeoLength > 0 {
		stats.Curvature = float64(stats.RouteLength) / stats.GeoLength
	}
	return stats, nil
}

// StopRoutes returns the names of the routes serving the named stop in
// lexicographic order. The slice is empty (not nil) if no route serves the
// stop. The boolean is false if there is no such stop.
func (c *Catalogue) StopRoutes(name string) ([]string, bool) {
	s, ok := c.stopsByName[name]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(c.stopRoutes[s.ID]))
	for rn := range c.stopRoutes[s.ID] {
		names = append(names, rn)
	}
	slices.Sort(names)
	return names, true
}
