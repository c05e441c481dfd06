// Package agents animates markers that patrol a fixed polyline, looping back
// to the start when they reach the end.
package agents

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Path is an immutable polyline shared by every agent that walks it.
type Path struct {
	points  []orb.Point
	lengths []float64
	total   float64
}

func NewPath(points []orb.Point) *Path {
	p := &Path{points: append([]orb.Point(nil), points...)}
	for i := 0; i+1 < len(p.points); i++ {
		l := planar.Distance(p.points[i], p.points[i+1])
		p.lengths = append(p.lengths, l)
		p.total += l
	}
	return p
}

func (p *Path) Total() float64 { return p.total }

func (p *Path) Len() int { return len(p.points) }

func (p *Path) Points() []orb.Point { return p.points }

// At returns the point progress units along the path. It walks the segment
// list, so cost grows with the number of segments.
func (p *Path) At(progress float64) orb.Point {
	switch len(p.points) {
	case 0:
		return orb.Point{}
	case 1:
		return p.points[0]
	}
	remaining := progress
	for i, l := range p.lengths {
		if remaining <= l {
			t := 0.0
			if l > 0 {
				t = remaining / l
			}
			a, b := p.points[i], p.points[i+1]
			return orb.Point{a.X() + (b.X()-a.X())*t, a.Y() + (b.Y()-a.Y())*t}
		}
		remaining -= l
	}
	// Float drift past the last segment.
	return p.points[len(p.points)-1]
}

// Agent is a position along a Path and a speed in path units per second.
type Agent struct {
	Progress float64
	Speed    float64
}

// Update advances the agent by dt seconds, wrapping at the end of the path.
func (a *Agent) Update(p *Path, dt float64) {
	if p == nil || p.total == 0 {
		return
	}
	a.Progress = math.Mod(a.Progress+a.Speed*dt, p.total)
	if a.Progress < 0 {
		a.Progress += p.total
	}
}

func (a *Agent) Position(p *Path) orb.Point { return p.At(a.Progress) }

// Swarm is a group of agents sharing one path.
type Swarm struct {
	Path   *Path
	Agents []Agent
}

// NewSwarm creates n agents at the start of path. With spread set they are
// instead spaced evenly along it.
func NewSwarm(path *Path, n int, speed float64, spread bool) *Swarm {
	s := &Swarm{Path: path, Agents: make([]Agent, n)}
	for i := range s.Agents {
		s.Agents[i].Speed = speed
		if spread && n > 0 {
			s.Agents[i].Progress = path.Total() * float64(i) / float64(n)
		}
	}
	return s
}

func (s *Swarm) Update(dt float64) {
	for i := range s.Agents {
		s.Agents[i].Update(s.Path, dt)
	}
}

// Routed reports whether the swarm has a path of nonzero length to walk.
func (s *Swarm) Routed() bool {
	return s.Path != nil && s.Path.Len() >= 2 && s.Path.Total() > 0
}

// Positions returns the current position of every agent, or nil when the
// swarm has no route.
func (s *Swarm) Positions() []orb.Point {
	if !s.Routed() {
		return nil
	}
	out := make([]orb.Point, len(s.Agents))
	for i := range s.Agents {
		out[i] = s.Agents[i].Position(s.Path)
	}
	return out
}

// DeltaTime derives the animation step from the measured frame rate,
// falling back to nominal when the rate is unknown.
func DeltaTime(fps, nominal float64) float64 {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nominal
	}
	return 1 / fps
}
