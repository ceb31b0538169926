package transit

import (
	"errors"
	"fmt"

	"github.com/rhartert/transit-router/transit/graph"
)

// ItemKind is the kind of an itinerary item.
type ItemKind int8

const (
	WaitItem ItemKind = iota
	RideItem
)

func (k ItemKind) String() string {
	switch k {
	case WaitItem:
		return "Wait"
	case RideItem:
		return "Bus"
	default:
		return fmt.Sprintf("ItemKind(%d)", int8(k))
	}
}

// Item is one step of an itinerary: either waiting for a bus at StopName, or
// riding route RouteName for SpanCount stops. Time is in minutes.
type Item struct {
	Kind      ItemKind
	StopName  string
	RouteName string
	SpanCount int
	Time      float64
}

// Itinerary is a minimum time trip between two stops. TotalTime is in
// minutes and is the sum of the items' times.
type Itinerary struct {
	TotalTime float64
	Items     []Item
}

// Router answers minimum time itinerary queries. It is immutable and can be
// queried concurrently.
type Router struct {
	graph    *graph.Digraph
	items    []Item // indexed by edge ID
	vertices map[string]vertexPair
}

// Route returns a minimum time itinerary from stop from to stop to. It fails
// with ErrStopNotFound if one of the stops does not exist and with ErrNoRoute
// if to cannot be reached from from.
//
// Going from a stop to itself takes no time and has no item.
func (r *Router) Route(from string, to string) (*Itinerary, error) {
	src, ok := r.vertices[from]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, from)
	}
	dst, ok := r.vertices[to]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, to)
	}
	if from == to {
		return &Itinerary{Items: []Item{}}, nil
	}

	p, err := graph.ShortestPath(r.graph, src.idle, dst.idle)
	if errors.Is(err, graph.ErrNoPath) {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNoRoute, from, to)
	}
	if err != nil {
		return nil, err
	}

	it := &Itinerary{
		TotalTime: p.Weight,
		Items:     make([]Item, len(p.Edges)),
	}
	for i, e := range p.Edges {
		it.Items[i] = r.items[e]
	}
	return it, nil
}
