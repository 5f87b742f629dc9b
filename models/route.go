package models

import (
	"errors"
	"fmt"
	"strings"
)

// Route selects which screen is displayed.
type Route int

const (
	RouteHome Route = iota
	RouteProduct
	RouteCart
	RouteRestricted
)

// ErrUnknownRoute is returned when a route name cannot be parsed.
var ErrUnknownRoute = errors.New("unknown route")

var routeNames = [...]string{
	RouteHome:       "home",
	RouteProduct:    "product",
	RouteCart:       "cart",
	RouteRestricted: "restricted",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return fmt.Sprintf("Route(%d)", int(r))
	}
	return routeNames[r]
}

// Valid reports whether r is one of the defined routes.
func (r Route) Valid() bool {
	return r >= RouteHome && r <= RouteRestricted
}

func ParseRoute(s string) (Route, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range routeNames {
		if n == name {
			return Route(i), nil
		}
	}
	return RouteHome, fmt.Errorf("%w: %q", ErrUnknownRoute, s)
}

func (r Route) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRoute, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Route) UnmarshalText(text []byte) error {
	parsed, err := ParseRoute(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
