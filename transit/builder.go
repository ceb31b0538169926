package transit

import (
	"fmt"
	"log"

	"github.com/rhartert/transit-router/transit/graph"
)

// Settings configures the travel times used to build a Router.
type Settings struct {
	// Time in minutes spent waiting for a bus at any stop.
	BusWaitTime float64

	// Speed of buses in km/h.
	BusVelocity float64
}

func (s Settings) validate() error {
	if s.BusWaitTime <= 0 {
		return fmt.Errorf("%w: bus wait time must be positive, got %v", ErrInvalidSettings, s.BusWaitTime)
	}
	if s.BusVelocity <= 0 {
		return fmt.Errorf("%w: bus velocity must be positive, got %v", ErrInvalidSettings, s.BusVelocity)
	}
	return nil
}

// travelTime returns the time in minutes needed to ride the given distance in
// meters.
func (s Settings) travelTime(meters int) float64 {
	const metersPerKm = 1000
	const minutesPerHour = 60
	return float64(meters) / metersPerKm / s.BusVelocity * minutesPerHour
}

// vertexPair holds the two graph nodes of a stop: idle is a rider standing
// at the stop, boarding is a rider who has just boarded a bus there.
type vertexPair struct {
	idle     int
	boarding int
}

type builder struct {
	catalogue *Catalogue
	settings  Settings
	vertices  []vertexPair // indexed by stop ID
	edges     []graph.Edge
	items     []Item // item of each edge, indexed by edge ID
}

// BuildRouter compiles the catalogue into a routing graph and returns a
// Router that answers itinerary queries on it. The catalogue must not be
// modified afterwards.
//
// Each stop gets an idle and a boarding node. Waiting at a stop is an edge
// from its idle node to its boarding node. Riding a route from its i-th stop
// to its j-th stop (i < j, on the same leg of the route) is a single edge
// from the boarding node of the former to the idle node of the latter whose
// weight is the total travel time between them.
//
// Building fails with a MissingDistanceError if the road distance between
// two consecutive stops of a route is unknown.
func BuildRouter(c *Catalogue, s Settings) (*Router, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	b := &builder{
		catalogue: c,
		settings:  s,
		vertices:  make([]vertexPair, len(c.Stops())),
	}
	b.addWaitEdges()
	if err := b.addRideEdges(); err != nil {
		return nil, err
	}

	r := &Router{
		graph:    graph.NewDigraph(b.edges, len(b.vertices)*2),
		items:    b.items,
		vertices: make(map[string]vertexPair, len(b.vertices)),
	}
	for _, st := range c.Stops() {
		r.vertices[st.Name] = b.vertices[st.ID]
	}
	log.Printf("routing graph built: %d stops, %d routes, %d nodes, %d edges",
		len(c.Stops()), len(c.Routes()), r.graph.NodeCount(), r.graph.EdgeCount())
	return r, nil
}

func (b *builder) addWaitEdges() {
	for _, s := range b.catalogue.Stops() {
		vp := vertexPair{idle: 2 * s.ID, boarding: 2*s.ID + 1}
		b.vertices[s.ID] = vp
		b.addEdge(graph.Edge{From: vp.idle, To: vp.boarding, Weight: b.settings.BusWaitTime}, Item{
			Kind:     WaitItem,
			StopName: s.Name,
			Time:     b.settings.BusWaitTime,
		})
	}
}

func (b *builder) addRideEdges() error {
	for _, r := range b.catalogue.Routes() {
		seq := r.Effective()
		if r.IsRoundTrip {
			if err := b.addLegEdges(r, 0, len(seq)-1); err != nil {
				return err
			}
			continue
		}

		// The effective sequence of a there-and-back route is odd-sized and
		// its middle stop is the terminus of the outbound leg.
		mid := len(seq) / 2
		if err := b.addLegEdges(r, 0, mid); err != nil {
			return err
		}
		if err := b.addLegEdges(r, mid, len(seq)-1); err != nil {
			return err
		}
	}
	return nil
}

// addLegEdges adds one ride edge for each pair of positions i < j in the
// leg [first, last] of the route's effective sequence.
func (b *builder) addLegEdges(r *Route, first int, last int) error {
	seq := r.Effective()
	for i := first; i < last; i++ {
		from := b.vertices[seq[i].ID].boarding
		minutes := 0.0
		for j := i + 1; j <= last; j++ {
			d, ok := b.catalogue.distance(seq[j-1], seq[j])
			if !ok {
				return &MissingDistanceError{
					Route: r.Name,
					From:  seq[j-1].Name,
					To:    seq[j].Name,
				}
			}
			minutes += b.settings.travelTime(d)
			b.addEdge(graph.Edge{From: from, To: b.vertices[seq[j].ID].idle, Weight: minutes}, Item{
				Kind:      RideItem,
				RouteName: r.Name,
				SpanCount: j - i,
				Time:      minutes,
			})
		}
	}
	return nil
}

func (b *builder) addEdge(e graph.Edge, item Item) {
	b.edges = append(b.edges, e)
	b.items = append(b.items, item)
}
