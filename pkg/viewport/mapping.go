package viewport

import (
	"math"

	"github.com/paulmach/orb"
)

// Screen describes the render target and the porthole drawn on it.
type Screen struct {
	Width, Height int
	// Zoom shrinks the fitted scale so the view does not touch the edges.
	Zoom float64
	// CircleRatio is the porthole radius as a fraction of the shorter side.
	CircleRatio float64
}

// Mapping converts world points to screen pixels. The zero Mapping is not
// ready and maps nothing; callers must check Ready before drawing.
type Mapping struct {
	view   Boundary
	screen Screen

	scale            float64
	offX, offY       float64
	circleX, circleY float64
	circleRadius     float64
}

// Key identifies everything a baked street image depends on.
type Key struct {
	View   Boundary
	Screen Screen
}

func NewMapping(b Boundary, s Screen) Mapping {
	w, h := float64(s.Width), float64(s.Height)
	m := Mapping{view: b, screen: s}
	if b.Width() <= 0 || b.Height() <= 0 || w <= 0 || h <= 0 {
		return m
	}
	m.scale = math.Min(w/b.Width(), h/b.Height()) * s.Zoom
	m.circleX, m.circleY = w/2, h/2
	m.circleRadius = math.Min(w, h) * s.CircleRatio
	m.offX = m.circleX - b.Width()*m.scale/2
	m.offY = m.circleY - b.Height()*m.scale/2
	return m
}

func (m Mapping) Ready() bool { return m.scale > 0 }

func (m Mapping) Scale() float64 { return m.scale }

func (m Mapping) View() Boundary { return m.view }

func (m Mapping) Screen() Screen { return m.screen }

func (m Mapping) Key() Key { return Key{View: m.view, Screen: m.screen} }

// Local maps p into the translated frame whose origin is the view's
// top-left corner. Screen y grows downward, so world y is flipped.
func (m Mapping) Local(p orb.Point) (x, y float64) {
	return (p.X() - m.view.MinX) * m.scale, (m.view.MaxY - p.Y()) * m.scale
}

// Offset is the translation from the local frame to raw screen pixels.
func (m Mapping) Offset() (dx, dy float64) { return m.offX, m.offY }

// Project maps p to raw screen pixels.
func (m Mapping) Project(p orb.Point) (x, y float64) {
	x, y = m.Local(p)
	return x + m.offX, y + m.offY
}

// Circle returns the porthole centre and radius in screen pixels.
func (m Mapping) Circle() (cx, cy, r float64) {
	return m.circleX, m.circleY, m.circleRadius
}
