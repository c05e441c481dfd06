package agents

import (
	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/sudorandom/porthole/pkg/viewport"
)

// Source produces the world-space route agents follow between two points.
type Source interface {
	Route(origin, destination orb.Point) ([]orb.Point, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(origin, destination orb.Point) ([]orb.Point, error)

func (f SourceFunc) Route(origin, destination orb.Point) ([]orb.Point, error) {
	return f(origin, destination)
}

// ScreenPath asks src for a route and maps it into the local frame of m.
// Any failure yields an empty path, which leaves agents inert.
func ScreenPath(src Source, origin, destination orb.Point, m viewport.Mapping, logger *log.Logger) *Path {
	if logger == nil {
		logger = log.Default()
	}
	if src == nil || !m.Ready() {
		return NewPath(nil)
	}
	route, err := src.Route(origin, destination)
	if err != nil {
		logger.Warn("computing agent path", "err", err)
		return NewPath(nil)
	}
	points := make([]orb.Point, len(route))
	for i, p := range route {
		x, y := m.Local(p)
		points[i] = orb.Point{x, y}
	}
	path := NewPath(points)
	logger.Info("agent path ready", "points", path.Len(), "length", path.Total())
	return path
}
