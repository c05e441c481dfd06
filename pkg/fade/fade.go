// Package fade groups street segments by how close they sit to the edge of
// the porthole and bakes each group into a single drawable shape.
package fade

import (
	"image/color"
	"math"
	"sort"

	"github.com/sudorandom/porthole/pkg/canvas"
	"github.com/sudorandom/porthole/pkg/streets"
	"github.com/sudorandom/porthole/pkg/viewport"
)

// Params tunes the falloff. EdgeStart is the fraction of the radius where
// fading begins and Intensity the exponent of the curve. BufferFactor
// enlarges the clip circle when filtering, and segments whose rounded
// opacity is below MinOpacity are dropped.
type Params struct {
	EdgeStart    float64
	Intensity    float64
	BufferFactor float64
	MinOpacity   int

	StrokeWidth float32
	Color       color.NRGBA
}

// Factor is the visibility in [0,1] of a point d pixels from the centre of
// a circle of radius r. It is 1 up to EdgeStart*r and then falls off as a
// power curve, reaching 0 at the rim.
func Factor(d, r float64, p Params) float64 {
	if r <= 0 {
		return 0
	}
	rel := d / r
	if rel <= p.EdgeStart {
		return 1
	}
	f := 1 - (rel-p.EdgeStart)/(1-p.EdgeStart)
	if f <= 0 {
		return 0
	}
	return math.Min(1, math.Pow(f, p.Intensity))
}

// Opacity converts an averaged fade factor into an alpha level.
func Opacity(avg float64) int {
	return int(math.Round(255 * avg))
}

// Buckets maps an opacity level to the screen-space lines drawn at it.
// Lines are in the mapping's local frame.
type Buckets struct {
	levels []uint8
	lines  map[uint8][]canvas.Line
	total  int
}

// Levels returns the opacity levels in ascending order.
func (b Buckets) Levels() []uint8 { return b.levels }

func (b Buckets) Lines(level uint8) []canvas.Line { return b.lines[level] }

// Len is the total number of bucketed segments.
func (b Buckets) Len() int { return b.total }

// Bucket assigns each visible segment to the bucket of its averaged fade.
//
// Segments are re-filtered against the on-screen circle (radius times
// BufferFactor) since the world-space cull is coarser than the final
// mapping. Segments below MinOpacity are dropped.
func Bucket(visible []streets.Segment, m viewport.Mapping, p Params) Buckets {
	b := Buckets{lines: make(map[uint8][]canvas.Line)}
	if !m.Ready() {
		return b
	}
	cx, cy, r := m.Circle()
	limit := r * p.BufferFactor
	ox, oy := m.Offset()

	for _, s := range visible {
		x1, y1 := m.Local(s.U)
		x2, y2 := m.Local(s.V)
		d1 := math.Hypot(x1+ox-cx, y1+oy-cy)
		d2 := math.Hypot(x2+ox-cx, y2+oy-cy)
		if d1 > limit && d2 > limit {
			continue
		}

		avg := (Factor(d1, r, p) + Factor(d2, r, p)) / 2
		level := Opacity(avg)
		if level < p.MinOpacity {
			continue
		}
		key := uint8(level)
		if _, ok := b.lines[key]; !ok {
			b.levels = append(b.levels, key)
		}
		b.lines[key] = append(b.lines[key], canvas.Line{
			X1: float32(x1), Y1: float32(y1),
			X2: float32(x2), Y2: float32(y2),
		})
		b.total++
	}
	sort.Slice(b.levels, func(i, j int) bool { return b.levels[i] < b.levels[j] })
	return b
}
