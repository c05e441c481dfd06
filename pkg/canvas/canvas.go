// Package canvas is the drawing surface the renderer needs from a graphics
// backend: filled circles and rectangles, batched line shapes, text, and
// offscreen surfaces that can be drawn onto other surfaces.
package canvas

import "image/color"

// Line is a single screen-space segment.
type Line struct {
	X1, Y1, X2, Y2 float32
}

// Shape is a batch of lines baked by a Device. It is drawn in one call.
type Shape interface {
	Lines() int
}

type Surface interface {
	Size() (w, h int)
	Fill(c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
	FillRect(x, y, w, h float32, c color.Color)
	DrawShape(s Shape, dx, dy float64)
	DrawSurface(src Surface, dx, dy float64)
	Text(s string, x, y float64, c color.Color)
}

// Device creates offscreen surfaces and baked shapes.
type Device interface {
	NewSurface(w, h int) Surface
	NewLineShape(lines []Line, width float32, c color.Color) Shape
}
