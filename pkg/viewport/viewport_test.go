package viewport

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

var defaultParams = Params{Padding: 0.3, MinSpan: 1000}

func TestComputeWideRoute(t *testing.T) {
	b := Compute(orb.Point{0, 0}, orb.Point{1200, 0}, defaultParams)

	assert.InDelta(t, 1200*(1+2*0.3), b.Width(), 1e-9)
	assert.InDelta(t, 1000*(1+2*0.3), b.Height(), 1e-9)
	assert.InDelta(t, 600, b.CenterX, 1e-9)
	assert.InDelta(t, 0, b.CenterY, 1e-9)
}

func TestComputeSamePoint(t *testing.T) {
	p := orb.Point{5000, -300}
	b := Compute(p, p, defaultParams)

	if b.Width() != b.Height() {
		t.Errorf("degenerate input should give a square view, got %vx%v", b.Width(), b.Height())
	}
	assert.Equal(t, p, b.Center())
	assert.True(t, b.Inner.Contains(p))
	assert.InDelta(t, 800, b.Radius(), 1e-9)
}

func TestComputeIsOrderIndependent(t *testing.T) {
	a, c := orb.Point{10, 2000}, orb.Point{-500, 40}
	assert.Equal(t, Compute(a, c, defaultParams), Compute(c, a, defaultParams))
}

func TestComputeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1e6, 1e6)

	properties.Property("spans never drop below the floor", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			b := Compute(orb.Point{x1, y1}, orb.Point{x2, y2}, defaultParams)
			return b.Width() >= defaultParams.MinSpan && b.Height() >= defaultParams.MinSpan
		},
		coord, coord, coord, coord,
	))

	properties.Property("endpoints lie in the inner box", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			o, d := orb.Point{x1, y1}, orb.Point{x2, y2}
			b := Compute(o, d, defaultParams)
			outer := orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
			return b.Inner.Contains(o) && b.Inner.Contains(d) && outer.Contains(o) && outer.Contains(d)
		},
		coord, coord, coord, coord,
	))

	properties.Property("padding is applied to the floored span", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			b := Compute(orb.Point{x1, y1}, orb.Point{x2, y2}, defaultParams)
			innerW := b.Inner.Max.X() - b.Inner.Min.X()
			return math.Abs(b.Width()-innerW*(1+2*defaultParams.Padding)) <= 1e-6*math.Max(1, innerW)
		},
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}

func TestMapping(t *testing.T) {
	b := Compute(orb.Point{0, 0}, orb.Point{1000, 1000}, Params{Padding: 0, MinSpan: 1000})
	m := NewMapping(b, Screen{Width: 800, Height: 800, Zoom: 0.92, CircleRatio: 0.49})

	if !m.Ready() {
		t.Fatal("mapping should be ready")
	}
	assert.InDelta(t, 0.8*0.92, m.Scale(), 1e-12)

	cx, cy, r := m.Circle()
	assert.Equal(t, 400.0, cx)
	assert.Equal(t, 400.0, cy)
	assert.InDelta(t, 392, r, 1e-9)

	// The view centre lands on the circle centre.
	x, y := m.Project(b.Center())
	assert.InDelta(t, cx, x, 1e-9)
	assert.InDelta(t, cy, y, 1e-9)

	// World y grows up, screen y grows down.
	_, yTop := m.Local(orb.Point{0, 1000})
	_, yBottom := m.Local(orb.Point{0, 0})
	assert.Less(t, yTop, yBottom)

	lx, ly := m.Local(orb.Point{0, 1000})
	assert.Equal(t, 0.0, lx)
	assert.Equal(t, 0.0, ly)
}

func TestMappingKeepsAspect(t *testing.T) {
	b := Compute(orb.Point{0, 0}, orb.Point{4000, 0}, Params{Padding: 0, MinSpan: 1000})
	m := NewMapping(b, Screen{Width: 800, Height: 600, Zoom: 1, CircleRatio: 0.5})

	x1, y1 := m.Local(orb.Point{0, 0})
	x2, y2 := m.Local(orb.Point{100, 100})
	assert.InDelta(t, x2-x1, y1-y2, 1e-9, "both axes share one scale")
	assert.InDelta(t, 800.0/4000, m.Scale(), 1e-12)
}

func TestZeroMappingNotReady(t *testing.T) {
	var m Mapping
	if m.Ready() {
		t.Error("zero mapping must not be ready")
	}
	m = NewMapping(Boundary{}, Screen{Width: 800, Height: 800, Zoom: 1, CircleRatio: 0.5})
	if m.Ready() {
		t.Error("empty boundary must not be ready")
	}
}

func TestMappingKeyChanges(t *testing.T) {
	b := Compute(orb.Point{0, 0}, orb.Point{1, 1}, defaultParams)
	s := Screen{Width: 800, Height: 800, Zoom: 0.92, CircleRatio: 0.49}
	m1, m2 := NewMapping(b, s), NewMapping(b, s)
	assert.Equal(t, m1.Key(), m2.Key())

	s.Width = 1024
	assert.NotEqual(t, m1.Key(), NewMapping(b, s).Key())
}
