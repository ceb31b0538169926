package transit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestItemKind_String(t *testing.T) {
	testCases := []struct {
		kind ItemKind
		want string
	}{
		{WaitItem, "Wait"},
		{RideItem, "Bus"},
		{ItemKind(7), "ItemKind(7)"},
	}

	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("String(): want %q, got %q", tc.want, got)
		}
	}
}

// newNetwork returns a router over two routes sharing stop C:
//
//	route "1" (round trip): A -> B -> C -> A
//	route "2" (there and back): C <-> D <-> E
//
// and an isolated stop F.
func newNetwork(t *testing.T) *Router {
	t.Helper()
	c := newTriangle(t)
	mustAddStop(t, c, "D", Coordinates{0, 3})
	mustAddStop(t, c, "E", Coordinates{0, 4})
	mustAddStop(t, c, "F", Coordinates{0, 5})
	mustAddDistance(t, c, "C", "D", 2000)
	mustAddDistance(t, c, "D", "E", 1000)
	mustAddDistance(t, c, "E", "D", 3000)
	mustAddRoute(t, c, "2", []string{"C", "D", "E"}, false)

	r, err := BuildRouter(c, testSettings)
	if err != nil {
		t.Fatalf("BuildRouter(): want no error, got %s", err)
	}
	return r
}

func TestRouter_Route(t *testing.T) {
	testCases := []struct {
		desc string
		from string
		to   string
		want *Itinerary
	}{
		{
			desc: "same stop",
			from: "A",
			to:   "A",
			want: &Itinerary{TotalTime: 0, Items: []Item{}},
		},
		{
			desc: "stay on board",
			from: "A",
			to:   "C",
			want: &Itinerary{
				TotalTime: 9,
				Items: []Item{
					{Kind: WaitItem, StopName: "A", Time: 6},
					{Kind: RideItem, RouteName: "1", SpanCount: 2, Time: 3},
				},
			},
		},
		{
			desc: "round trip only goes forward",
			from: "B",
			to:   "A",
			want: &Itinerary{
				TotalTime: 10.5,
				Items: []Item{
					{Kind: WaitItem, StopName: "B", Time: 6},
					{Kind: RideItem, RouteName: "1", SpanCount: 2, Time: 4.5},
				},
			},
		},
		{
			desc: "transfer",
			from: "A",
			to:   "E",
			want: &Itinerary{
				TotalTime: 6 + 3 + 6 + 4.5,
				Items: []Item{
					{Kind: WaitItem, StopName: "A", Time: 6},
					{Kind: RideItem, RouteName: "1", SpanCount: 2, Time: 3},
					{Kind: WaitItem, StopName: "C", Time: 6},
					{Kind: RideItem, RouteName: "2", SpanCount: 2, Time: 4.5},
				},
			},
		},
		{
			desc: "inbound leg uses declared reverse distances",
			from: "E",
			to:   "C",
			want: &Itinerary{
				TotalTime: 6 + 7.5,
				Items: []Item{
					{Kind: WaitItem, StopName: "E", Time: 6},
					{Kind: RideItem, RouteName: "2", SpanCount: 2, Time: 7.5},
				},
			},
		},
	}

	r := newNetwork(t)
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := r.Route(tc.from, tc.to)
			if err != nil {
				t.Fatalf("Route(%q, %q): want no error, got %s", tc.from, tc.to, err)
			}

			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Route(%q, %q): mismatch (-want +got):\n%s", tc.from, tc.to, diff)
			}
		})
	}
}

func TestRouter_Route_errors(t *testing.T) {
	testCases := []struct {
		desc    string
		from    string
		to      string
		wantErr error
	}{
		{"unknown destination", "A", "Z", ErrStopNotFound},
		{"unknown source", "Z", "A", ErrStopNotFound},
		{"unknown stop to itself", "Z", "Z", ErrStopNotFound},
		{"isolated destination", "A", "F", ErrNoRoute},
		{"isolated source", "F", "A", ErrNoRoute},
	}

	r := newNetwork(t)
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := r.Route(tc.from, tc.to)

			if got != nil {
				t.Errorf("Route(%q, %q): want no itinerary, got %+v", tc.from, tc.to, got)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Route(%q, %q): want error %v, got %v", tc.from, tc.to, tc.wantErr, err)
			}
		})
	}
}

func TestRouter_Route_sameStopEverywhere(t *testing.T) {
	r := newNetwork(t)

	for _, s := range []string{"A", "B", "C", "D", "E", "F"} {
		got, err := r.Route(s, s)
		if err != nil {
			t.Fatalf("Route(%q, %q): want no error, got %s", s, s, err)
		}
		if got.TotalTime != 0 || len(got.Items) != 0 {
			t.Errorf("Route(%q, %q): want empty itinerary, got %+v", s, s, got)
		}
	}
}

func TestRouter_Route_concurrent(t *testing.T) {
	r := newNetwork(t)
	want, err := r.Route("A", "E")
	if err != nil {
		t.Fatalf("Route(): want no error, got %s", err)
	}

	var wg sync.WaitGroup
	got := make([]*Itinerary, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = r.Route("A", "E")
		}(i)
	}
	wg.Wait()

	for i := range got {
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("query %d: mismatch (-want +got):\n%s", i, diff)
		}
	}
}

// randomNetwork fills a catalogue with random stops, distances and routes. It
// returns the catalogue and the minimum time between every pair of stops,
// computed with Floyd-Warshall over one edge per boarding and alighting stop
// of a route leg.
func randomNetwork(t *testing.T, rng *rand.Rand) (*Catalogue, [][]float64) {
	t.Helper()
	c := NewCatalogue()
	nStops := 2 + rng.Intn(10)
	for i := 0; i < nStops; i++ {
		mustAddStop(t, c, fmt.Sprintf("s%d", i), Coordinates{rng.Float64(), rng.Float64()})
	}

	meters := map[[2]int]int{}
	setDistance := func(a, b int) {
		d := 100 + rng.Intn(5000)
		meters[[2]int{a, b}] = d
		mustAddDistance(t, c, fmt.Sprintf("s%d", a), fmt.Sprintf("s%d", b), d)
	}
	distance := func(a, b int) int {
		if d, ok := meters[[2]int{a, b}]; ok {
			return d
		}
		return meters[[2]int{b, a}]
	}

	times := make([][]float64, nStops)
	for i := range times {
		times[i] = make([]float64, nStops)
		for j := range times[i] {
			if i != j {
				times[i][j] = math.Inf(1)
			}
		}
	}
	var legs [][]int

	nRoutes := 1 + rng.Intn(5)
	for r := 0; r < nRoutes; r++ {
		stops := []int{rng.Intn(nStops)}
		for size := 2 + rng.Intn(4); len(stops) < size; {
			next := rng.Intn(nStops)
			if next == stops[len(stops)-1] {
				continue
			}
			stops = append(stops, next)
		}
		isRoundTrip := rng.Intn(2) == 0
		if isRoundTrip && stops[len(stops)-1] != stops[0] {
			stops = append(stops, stops[0])
		}

		names := make([]string, len(stops))
		for i, s := range stops {
			names[i] = fmt.Sprintf("s%d", s)
			if i > 0 {
				a, b := stops[i-1], s
				_, known := meters[[2]int{a, b}]
				_, knownBack := meters[[2]int{b, a}]
				if !known && !knownBack {
					setDistance(a, b)
				}
				if rng.Intn(3) == 0 {
					setDistance(b, a)
				}
			}
		}
		mustAddRoute(t, c, fmt.Sprintf("r%d", r), names, isRoundTrip)

		legs = append(legs, stops)
		if !isRoundTrip {
			back := make([]int, len(stops))
			for i, s := range stops {
				back[len(stops)-1-i] = s
			}
			legs = append(legs, back)
		}
	}

	// Later routes may override distances, so legs are timed last.
	for _, leg := range legs {
		for i := 0; i < len(leg)-1; i++ {
			ride := 0.0
			for j := i + 1; j < len(leg); j++ {
				ride += testSettings.travelTime(distance(leg[j-1], leg[j]))
				if w := testSettings.BusWaitTime + ride; w < times[leg[i]][leg[j]] {
					times[leg[i]][leg[j]] = w
				}
			}
		}
	}

	for k := 0; k < nStops; k++ {
		for i := 0; i < nStops; i++ {
			for j := 0; j < nStops; j++ {
				if w := times[i][k] + times[k][j]; w < times[i][j] {
					times[i][j] = w
				}
			}
		}
	}
	return c, times
}

func TestRouter_Route_random(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	approx := cmpopts.EquateApprox(0, 1e-9)

	for n := 0; n < 500; n++ {
		c, times := randomNetwork(t, rng)
		r, err := BuildRouter(c, testSettings)
		if err != nil {
			t.Fatalf("network %d: BuildRouter(): want no error, got %s", n, err)
		}

		for i := range times {
			for j := range times {
				if i == j {
					continue
				}
				from, to := fmt.Sprintf("s%d", i), fmt.Sprintf("s%d", j)
				got, err := r.Route(from, to)

				if math.IsInf(times[i][j], 1) {
					if !errors.Is(err, ErrNoRoute) {
						t.Fatalf("network %d: Route(%s, %s): want ErrNoRoute, got %v", n, from, to, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("network %d: Route(%s, %s): want no error, got %s", n, from, to, err)
				}
				if diff := cmp.Diff(times[i][j], got.TotalTime, approx); diff != "" {
					t.Fatalf("network %d: Route(%s, %s): total time mismatch (-want +got):\n%s", n, from, to, diff)
				}

				sum := 0.0
				for k, item := range got.Items {
					if wantKind := ItemKind(k % 2); item.Kind != wantKind {
						t.Fatalf("network %d: Route(%s, %s): item %d is a %s, want a %s", n, from, to, k, item.Kind, wantKind)
					}
					sum += item.Time
				}
				if got.Items[0].StopName != from {
					t.Errorf("network %d: Route(%s, %s): first wait at %q", n, from, to, got.Items[0].StopName)
				}
				if diff := cmp.Diff(got.TotalTime, sum, approx); diff != "" {
					t.Errorf("network %d: Route(%s, %s): items do not add up (-total +sum):\n%s", n, from, to, diff)
				}
			}
		}
	}
}
