package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOffset(t *testing.T) {
	r := NewRecorder(100, 100)
	red := color.NRGBA{255, 0, 0, 255}

	WithOffset(r, 10, 20, func(s Surface) {
		s.FillCircle(1, 2, 3, red)
		s.FillRect(1, 1, 5, 5, red)
		s.Text("hi", 0, 0, red)
		s.DrawShape(nil, 1, 1)
		s.Fill(red)
	})
	r.FillCircle(1, 2, 3, red)

	require.Len(t, r.Ops, 6)
	assert.Equal(t, Op{Kind: OpCircle, X: 11, Y: 22, R: 3, Color: red}, r.Ops[0])
	assert.Equal(t, 11.0, r.Ops[1].X)
	assert.Equal(t, 21.0, r.Ops[1].Y)
	assert.Equal(t, 5.0, r.Ops[1].W, "sizes are not translated")
	assert.Equal(t, 10.0, r.Ops[2].X)
	assert.Equal(t, 20.0, r.Ops[2].Y)
	assert.Equal(t, 11.0, r.Ops[3].X)
	assert.Equal(t, OpFill, r.Ops[4].Kind)
	assert.Equal(t, 1.0, r.Ops[5].X, "translation is undone after the scope")
}

func TestNestedOffsets(t *testing.T) {
	r := NewRecorder(10, 10)
	WithOffset(r, 1, 1, func(outer Surface) {
		WithOffset(outer, 2, 3, func(inner Surface) {
			inner.FillCircle(0, 0, 1, color.White)
		})
	})
	require.Len(t, r.Ops, 1)
	assert.Equal(t, 3.0, r.Ops[0].X)
	assert.Equal(t, 4.0, r.Ops[0].Y)
}

func TestRecorderDevice(t *testing.T) {
	r := NewRecorder(10, 10)
	lines := []Line{{0, 0, 1, 1}, {1, 1, 2, 2}}
	shape := r.NewLineShape(lines, 1.2, color.NRGBA{1, 2, 3, 4})
	lines[0].X1 = 99

	assert.Equal(t, 2, shape.Lines())
	require.Len(t, r.Shapes, 1)
	assert.Equal(t, float32(0), r.Shapes[0].Segments[0].X1, "shape owns a copy")
	assert.Equal(t, color.NRGBA{1, 2, 3, 4}, r.Shapes[0].Color)

	s := r.NewSurface(4, 5)
	w, h := s.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 5, h)
	assert.Len(t, r.Surfaces, 1)
}

func TestOpKindString(t *testing.T) {
	assert.Equal(t, "circle", OpCircle.String())
	assert.Equal(t, "op(42)", OpKind(42).String())
}
