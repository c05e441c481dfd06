package canvas

import (
	"fmt"
	"image/color"
)

type OpKind int

const (
	OpFill OpKind = iota
	OpCircle
	OpRect
	OpShape
	OpSurface
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpCircle:
		return "circle"
	case OpRect:
		return "rect"
	case OpShape:
		return "shape"
	case OpSurface:
		return "surface"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// Op is one recorded draw call. Fields that do not apply to Kind are zero.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	R          float64
	Color      color.NRGBA
	Text       string
	Shape      Shape
	Surface    Surface
}

// Recorder is a Surface and Device that records draw calls instead of
// rasterising them.
type Recorder struct {
	W, H int
	Ops  []Op

	// Surfaces and Shapes hold everything created through the Device side.
	Surfaces []*Recorder
	Shapes   []*RecordedShape
}

func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Fill(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: nrgba(c)})
}

func (r *Recorder) FillCircle(cx, cy, rad float32, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: float64(cx), Y: float64(cy), R: float64(rad), Color: nrgba(c)})
}

func (r *Recorder) FillRect(x, y, w, h float32, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: float64(x), Y: float64(y), W: float64(w), H: float64(h), Color: nrgba(c)})
}

func (r *Recorder) DrawShape(s Shape, dx, dy float64) {
	r.Ops = append(r.Ops, Op{Kind: OpShape, X: dx, Y: dy, Shape: s})
}

func (r *Recorder) DrawSurface(src Surface, dx, dy float64) {
	r.Ops = append(r.Ops, Op{Kind: OpSurface, X: dx, Y: dy, Surface: src})
}

func (r *Recorder) Text(s string, x, y float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: nrgba(c)})
}

func (r *Recorder) NewSurface(w, h int) Surface {
	s := NewRecorder(w, h)
	r.Surfaces = append(r.Surfaces, s)
	return s
}

func (r *Recorder) NewLineShape(lines []Line, width float32, c color.Color) Shape {
	s := &RecordedShape{Segments: append([]Line(nil), lines...), Width: width, Color: nrgba(c)}
	r.Shapes = append(r.Shapes, s)
	return s
}

// Kinds lists the kinds of all recorded ops in order.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

type RecordedShape struct {
	Segments []Line
	Width    float32
	Color    color.NRGBA
}

func (s *RecordedShape) Lines() int { return len(s.Segments) }

func nrgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
