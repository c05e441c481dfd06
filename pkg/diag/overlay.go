package diag

import (
	"fmt"
	"image/color"

	"github.com/sudorandom/porthole/pkg/canvas"
)

var panelColor = color.NRGBA{0, 0, 0, 150}

const (
	panelX, panelY = 10, 10
	panelW, panelH = 200, 90
	textX          = 20
	firstLine      = 30
	lineHeight     = 20
)

// Overlay is the frame-rate panel in the top-left corner.
type Overlay struct {
	Enabled   bool
	TextColor color.Color

	window *Window
}

func NewOverlay(capacity int, enabled bool, textColor color.Color) *Overlay {
	return &Overlay{Enabled: enabled, TextColor: textColor, window: NewWindow(capacity)}
}

// Observe records a frame rate. Samples are kept while the panel is hidden
// so the stats are warm when it is shown again.
func (o *Overlay) Observe(fps float64) { o.window.Push(fps) }

func (o *Overlay) Toggle() bool {
	o.Enabled = !o.Enabled
	return o.Enabled
}

func (o *Overlay) Window() *Window { return o.window }

// Lines is the panel text for the current state.
func (o *Overlay) Lines(current float64, segments int) []string {
	lo, avg, hi := o.window.Stats()
	return []string{
		fmt.Sprintf("FPS: %.1f", current),
		fmt.Sprintf("Avg: %.1f", avg),
		fmt.Sprintf("Min: %.1f | Max: %.1f", lo, hi),
		fmt.Sprintf("Streets: %d", segments),
	}
}

func (o *Overlay) Draw(s canvas.Surface, current float64, segments int) {
	if !o.Enabled {
		return
	}
	s.FillRect(panelX, panelY, panelW, panelH, panelColor)
	c := o.TextColor
	if c == nil {
		c = color.White
	}
	for i, line := range o.Lines(current, segments) {
		s.Text(line, textX, float64(firstLine+i*lineHeight), c)
	}
}
