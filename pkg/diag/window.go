// Package diag tracks frame rates and draws the diagnostics panel.
package diag

import "math"

// Window keeps the most recent samples up to a fixed capacity, evicting the
// oldest when full.
type Window struct {
	buf   []float64
	start int
	n     int
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]float64, capacity)}
}

func (w *Window) Push(v float64) {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = v
		w.n++
		return
	}
	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

func (w *Window) Len() int { return w.n }

func (w *Window) Cap() int { return len(w.buf) }

// Samples returns a copy of the window, oldest first.
func (w *Window) Samples() []float64 {
	out := make([]float64, w.n)
	for i := range out {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Stats returns the minimum, mean and maximum sample. All three are zero
// for an empty window.
func (w *Window) Stats() (lo, avg, hi float64) {
	if w.n == 0 {
		return 0, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for i := 0; i < w.n; i++ {
		v := w.buf[(w.start+i)%len(w.buf)]
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, sum / float64(w.n), hi
}
