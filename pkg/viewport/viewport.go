// Package viewport derives the visible world region from an origin and a
// destination, and maps world coordinates onto the circular porthole.
package viewport

import (
	"math"

	"github.com/paulmach/orb"
)

// Params controls how much context is shown around the two endpoints.
type Params struct {
	// Padding is the fraction of each axis span added on both sides.
	Padding float64
	// MinSpan is the smallest width or height the un-padded box may have.
	MinSpan float64
}

// Boundary is the world-space view rectangle. It never changes after Compute.
type Boundary struct {
	MinX, MinY, MaxX, MaxY float64
	CenterX, CenterY       float64

	// Inner is the floored box before padding; both endpoints lie inside it.
	Inner orb.Bound
}

// Compute returns the view rectangle for origin and destination.
//
// Each axis is handled on its own: a span below MinSpan is re-centred and
// widened to exactly MinSpan, then both sides are padded by span*Padding.
// Identical points produce a square view centred on them.
func Compute(origin, destination orb.Point, p Params) Boundary {
	minX, maxX := math.Min(origin.X(), destination.X()), math.Max(origin.X(), destination.X())
	minY, maxY := math.Min(origin.Y(), destination.Y()), math.Max(origin.Y(), destination.Y())

	minX, maxX = floorSpan(minX, maxX, p.MinSpan)
	minY, maxY = floorSpan(minY, maxY, p.MinSpan)
	inner := orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}

	padX := (maxX - minX) * p.Padding
	padY := (maxY - minY) * p.Padding
	b := Boundary{
		MinX:  minX - padX,
		MaxX:  maxX + padX,
		MinY:  minY - padY,
		MaxY:  maxY + padY,
		Inner: inner,
	}
	b.CenterX = (b.MinX + b.MaxX) / 2
	b.CenterY = (b.MinY + b.MaxY) / 2
	return b
}

func floorSpan(lo, hi, floor float64) (float64, float64) {
	if hi-lo >= floor {
		return lo, hi
	}
	mid := (lo + hi) / 2
	return mid - floor/2, mid + floor/2
}

func (b Boundary) Width() float64  { return b.MaxX - b.MinX }
func (b Boundary) Height() float64 { return b.MaxY - b.MinY }

func (b Boundary) Center() orb.Point { return orb.Point{b.CenterX, b.CenterY} }

// Radius is half the smaller span, the world radius of the visible disc.
func (b Boundary) Radius() float64 {
	return math.Min(b.Width(), b.Height()) / 2
}

