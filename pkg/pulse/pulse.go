// Package pulse drives the breathing halos drawn around the origin and
// destination markers.
package pulse

import "math"

type Params struct {
	Speed     float64 // phase advance per tick, radians
	Amplitude float64
	BaseSize  float64
	Rings     int
	GlowScale float64
	RingAlpha int
}

// Clock is the shared pulse phase. The two markers read it half a cycle
// apart so one grows while the other shrinks.
type Clock struct {
	Params Params
	phase  float64
}

func NewClock(p Params) *Clock { return &Clock{Params: p} }

func (c *Clock) Tick() { c.phase += c.Params.Speed }

func (c *Clock) Phase() float64 { return c.phase }

func (c *Clock) Origin() float64 { return math.Sin(c.phase) * c.Params.Amplitude }

func (c *Clock) Destination() float64 { return math.Sin(c.phase+math.Pi) * c.Params.Amplitude }

// Ring is one glow circle, outermost first.
type Ring struct {
	Diameter float64
	Alpha    uint8
}

// Marker is the geometry of a pulsing marker for a single frame.
type Marker struct {
	Core  float64
	Rings []Ring
}

// Halo computes the core and glow rings for amplitude amp. Rings are
// ordered from the widest and faintest to the narrowest and brightest.
func Halo(amp float64, p Params) Marker {
	m := Marker{Core: math.Max(0, p.BaseSize+amp)}
	if p.Rings <= 0 {
		return m
	}
	step := m.Core * p.GlowScale / float64(p.Rings)
	boost := int(math.Abs(amp) * 3)
	for i := p.Rings; i >= 1; i-- {
		m.Rings = append(m.Rings, Ring{
			Diameter: math.Max(0, step*float64(i)+amp),
			Alpha:    clampAlpha(p.RingAlpha/i + boost),
		})
	}
	return m
}

func clampAlpha(a int) uint8 {
	switch {
	case a < 0:
		return 0
	case a > 255:
		return 255
	}
	return uint8(a)
}
