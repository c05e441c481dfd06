package fade

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/porthole/pkg/streets"
	"github.com/sudorandom/porthole/pkg/viewport"
)

var testParams = Params{
	EdgeStart:    0.75,
	Intensity:    2,
	BufferFactor: 1.8,
	MinOpacity:   3,
	StrokeWidth:  1.2,
}

func TestFactor(t *testing.T) {
	tests := []struct {
		d, r float64
		want float64
	}{
		{0, 100, 1},
		{75, 100, 1},
		{87.5, 100, 0.25},
		{100, 100, 0},
		{150, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		got := Factor(tt.d, tt.r, testParams)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Factor(%v, %v) = %v; want %v", tt.d, tt.r, got, tt.want)
		}
	}
}

func TestFactorProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("always within [0,1]", prop.ForAll(
		func(d float64) bool {
			f := Factor(d, 100, testParams)
			return f >= 0 && f <= 1
		},
		gen.Float64Range(0, 1000),
	))

	properties.Property("exactly 1 inside the fade start", prop.ForAll(
		func(d float64) bool {
			return Factor(d, 100, testParams) == 1
		},
		gen.Float64Range(0, 75),
	))

	properties.Property("non-increasing with distance", prop.ForAll(
		func(d, step float64) bool {
			return Factor(d+step, 100, testParams) <= Factor(d, 100, testParams)
		},
		gen.Float64Range(0, 300),
		gen.Float64Range(0, 50),
	))

	properties.TestingRun(t)
}

// square view of 1000x1000 world units mapped 1:1 onto a 1000px screen,
// with a porthole of radius 500 centred on the screen.
func testMapping() viewport.Mapping {
	b := viewport.Compute(orb.Point{0, 0}, orb.Point{1000, 1000}, viewport.Params{Padding: 0, MinSpan: 1000})
	return viewport.NewMapping(b, viewport.Screen{Width: 1000, Height: 1000, Zoom: 1, CircleRatio: 0.5})
}

func TestBucket(t *testing.T) {
	m := testMapping()
	segs := []streets.Segment{
		{U: orb.Point{500, 500}, V: orb.Point{510, 500}},     // centre, opaque
		{U: orb.Point{400, 500}, V: orb.Point{600, 500}},     // also opaque
		{U: orb.Point{500, 500}, V: orb.Point{500, 1000}},    // one end on the rim: avg 0.5
		{U: orb.Point{1000, 500}, V: orb.Point{0, 500}},      // both ends on the rim: dropped
		{U: orb.Point{2000, 2000}, V: orb.Point{3000, 3000}}, // outside the buffer
	}

	b := Bucket(segs, m, testParams)

	assert.Equal(t, []uint8{128, 255}, b.Levels())
	assert.Equal(t, 3, b.Len())
	require.Len(t, b.Lines(255), 2)
	require.Len(t, b.Lines(128), 1)

	l := b.Lines(255)[0]
	assert.Equal(t, float32(500), l.X1)
	assert.Equal(t, float32(500), l.Y1)
	assert.Equal(t, float32(510), l.X2)

	// y is flipped: world y=1000 is the top edge.
	assert.Equal(t, float32(0), b.Lines(128)[0].Y2)
}

func TestBucketUnreadyMapping(t *testing.T) {
	b := Bucket([]streets.Segment{{U: orb.Point{0, 0}, V: orb.Point{1, 1}}}, viewport.Mapping{}, testParams)
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Levels())
}

func TestBucketMembership(t *testing.T) {
	m := testMapping()
	cx, cy, r := m.Circle()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("each kept segment is in the bucket of its rounded fade", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			seg := streets.Segment{U: orb.Point{x1, y1}, V: orb.Point{x2, y2}}
			b := Bucket([]streets.Segment{seg}, m, testParams)

			sx1, sy1 := m.Project(seg.U)
			sx2, sy2 := m.Project(seg.V)
			d1, d2 := math.Hypot(sx1-cx, sy1-cy), math.Hypot(sx2-cx, sy2-cy)
			limit := r * testParams.BufferFactor
			want := Opacity((Factor(d1, r, testParams) + Factor(d2, r, testParams)) / 2)
			if (d1 > limit && d2 > limit) || want < testParams.MinOpacity {
				return b.Len() == 0
			}
			return b.Len() == 1 && len(b.Levels()) == 1 && int(b.Levels()[0]) == want
		},
		gen.Float64Range(-500, 1500),
		gen.Float64Range(-500, 1500),
		gen.Float64Range(-500, 1500),
		gen.Float64Range(-500, 1500),
	))

	properties.TestingRun(t)
}
