package transit

import (
	"errors"
	"fmt"
)

var (
	ErrStopNotFound    = errors.New("stop not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrNoRoute         = errors.New("no route between stops")
	ErrDuplicateStop   = errors.New("duplicate stop")
	ErrDuplicateRoute  = errors.New("duplicate route")
	ErrRouteTooShort   = errors.New("route must visit at least two stops")
	ErrInvalidSettings = errors.New("invalid routing settings")
)

// MissingDistanceError is returned when the road distance between two
// consecutive stops of a route is unknown in both directions.
type MissingDistanceError struct {
	Route string
	From  string
	To    string
}

func (e *MissingDistanceError) Error() string {
	return fmt.Sprintf("route %q: no distance between stops %q and %q", e.Route, e.From, e.To)
}
