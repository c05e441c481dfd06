package fade

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/porthole/pkg/canvas"
	"github.com/sudorandom/porthole/pkg/streets"
	"github.com/sudorandom/porthole/pkg/viewport"
)

func testSegments() []streets.Segment {
	return []streets.Segment{
		{U: orb.Point{500, 500}, V: orb.Point{510, 500}},
		{U: orb.Point{500, 500}, V: orb.Point{500, 1000}},
		{U: orb.Point{520, 500}, V: orb.Point{520, 520}},
	}
}

func TestCompositorBakesOncePerMapping(t *testing.T) {
	dev := canvas.NewRecorder(1000, 1000)
	p := testParams
	p.Color = color.NRGBA{70, 72, 76, 255}
	c := NewCompositor(p, log.New(&bytes.Buffer{}))

	if img := c.Image(dev); img != nil {
		t.Fatal("image should be nil before the first build")
	}

	m := testMapping()
	require.True(t, c.Sync(dev, testSegments(), m))
	assert.False(t, c.Sync(dev, testSegments(), m), "same mapping must not rebuild")
	assert.Equal(t, 3, c.Segments())

	require.Len(t, dev.Shapes, 2, "one shape per opacity level")
	assert.Equal(t, uint8(128), dev.Shapes[0].Color.A)
	assert.Equal(t, uint8(255), dev.Shapes[1].Color.A)
	assert.Equal(t, uint8(70), dev.Shapes[1].Color.R)
	assert.Equal(t, float32(1.2), dev.Shapes[1].Width)
	assert.Equal(t, 2, dev.Shapes[1].Lines())

	img := c.Image(dev)
	require.NotNil(t, img)
	require.Len(t, dev.Surfaces, 1)
	layer := dev.Surfaces[0]
	assert.Equal(t, []canvas.OpKind{canvas.OpFill, canvas.OpShape, canvas.OpShape}, layer.Kinds())
	assert.Same(t, dev.Shapes[0], layer.Ops[1].Shape, "lowest opacity is composited first")

	// A second request reuses the cached layer without redrawing.
	assert.Same(t, img, c.Image(dev))
	assert.Len(t, layer.Ops, 3)
	assert.Len(t, dev.Surfaces, 1)
}

func TestCompositorRebuildsOnViewportChange(t *testing.T) {
	dev := canvas.NewRecorder(1000, 1000)
	c := NewCompositor(testParams, log.New(&bytes.Buffer{}))

	m := testMapping()
	c.Sync(dev, testSegments(), m)
	c.Image(dev)
	layer := dev.Surfaces[0]

	b := viewport.Compute(orb.Point{0, 0}, orb.Point{2000, 2000}, viewport.Params{Padding: 0, MinSpan: 1000})
	moved := viewport.NewMapping(b, m.Screen())
	require.True(t, c.Sync(dev, testSegments(), moved))

	c.Image(dev)
	assert.Len(t, dev.Surfaces, 1, "same screen size keeps the surface")
	assert.Len(t, layer.Ops, 3+1+len(c.Buckets().Levels()), "layer is cleared and redrawn")

	s := m.Screen()
	s.Width = 640
	resized := viewport.NewMapping(b, s)
	require.True(t, c.Sync(dev, testSegments(), resized))
	c.Image(dev)
	assert.Len(t, dev.Surfaces, 2, "a new screen size allocates a new surface")
}
