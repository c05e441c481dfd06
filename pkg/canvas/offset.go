package canvas

import "image/color"

// WithOffset runs fn against a view of s whose origin is moved by (dx, dy).
// The translation ends when fn returns.
func WithOffset(s Surface, dx, dy float64, fn func(Surface)) {
	fn(&offsetSurface{Surface: s, dx: dx, dy: dy})
}

type offsetSurface struct {
	Surface
	dx, dy float64
}

func (o *offsetSurface) FillCircle(cx, cy, r float32, c color.Color) {
	o.Surface.FillCircle(cx+float32(o.dx), cy+float32(o.dy), r, c)
}

func (o *offsetSurface) FillRect(x, y, w, h float32, c color.Color) {
	o.Surface.FillRect(x+float32(o.dx), y+float32(o.dy), w, h, c)
}

func (o *offsetSurface) DrawShape(s Shape, dx, dy float64) {
	o.Surface.DrawShape(s, dx+o.dx, dy+o.dy)
}

func (o *offsetSurface) DrawSurface(src Surface, dx, dy float64) {
	o.Surface.DrawSurface(src, dx+o.dx, dy+o.dy)
}

func (o *offsetSurface) Text(s string, x, y float64, c color.Color) {
	o.Surface.Text(s, x+o.dx, y+o.dy, c)
}
