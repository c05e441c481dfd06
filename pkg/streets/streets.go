// Package streets flattens a street graph into world-space segments and culls
// them against the circular view.
package streets

import (
	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sudorandom/porthole/pkg/viewport"
)

type NodeID int64

type Edge struct {
	From, To NodeID
}

// Graph is the street network as supplied by the map data collaborator.
// Positions are in the projected world coordinate system.
type Graph interface {
	Position(id NodeID) (orb.Point, bool)
	Edges() []Edge
}

// Segment is one graph edge in world space.
type Segment struct {
	U, V   orb.Point
	Length float64
}

// Flatten converts every edge with two known endpoints into a Segment.
func Flatten(g Graph) []Segment {
	edges := g.Edges()
	segs := make([]Segment, 0, len(edges))
	for _, e := range edges {
		u, ok := g.Position(e.From)
		if !ok {
			continue
		}
		v, ok := g.Position(e.To)
		if !ok {
			continue
		}
		segs = append(segs, Segment{U: u, V: v, Length: planar.Distance(u, v)})
	}
	return segs
}

// Cull keeps segments with at least one endpoint inside radius*factor of
// center. The factor lets segments that cross the disc edge survive even
// when both endpoints sit outside the strict circle.
func Cull(segs []Segment, center orb.Point, radius, factor float64) []Segment {
	limit := radius * factor
	limitSq := limit * limit
	var out []Segment
	for _, s := range segs {
		if planar.DistanceSquared(s.U, center) <= limitSq || planar.DistanceSquared(s.V, center) <= limitSq {
			out = append(out, s)
		}
	}
	return out
}

type Result struct {
	All     []Segment
	Visible []Segment
}

func (r Result) Total() int        { return len(r.All) }
func (r Result) VisibleCount() int { return len(r.Visible) }

// Project flattens g and culls it against the view's enlarged disc.
func Project(g Graph, b viewport.Boundary, factor float64, logger *log.Logger) Result {
	if logger == nil {
		logger = log.Default()
	}
	all := Flatten(g)
	res := Result{
		All:     all,
		Visible: Cull(all, b.Center(), b.Radius(), factor),
	}
	logger.Info("projected street graph", "edges", res.Total(), "visible", res.VisibleCount())
	return res
}
