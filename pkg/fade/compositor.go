package fade

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sudorandom/porthole/pkg/canvas"
	"github.com/sudorandom/porthole/pkg/streets"
	"github.com/sudorandom/porthole/pkg/viewport"
)

// Compositor owns the baked street layer. Shapes are rebuilt only when the
// mapping changes, and the offscreen image is redrawn only after a rebuild,
// so a steady frame costs a single image draw.
type Compositor struct {
	params Params
	logger *log.Logger

	buckets Buckets
	shapes  []canvas.Shape
	mapping viewport.Mapping
	built   bool

	image canvas.Surface
	dirty bool
}

func NewCompositor(p Params, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{params: p, logger: logger}
}

// Rebuild re-buckets visible for m and bakes one shape per opacity level.
func (c *Compositor) Rebuild(dev canvas.Device, visible []streets.Segment, m viewport.Mapping) {
	start := time.Now()
	c.mapping = m
	c.built = true
	c.buckets = Bucket(visible, m, c.params)
	c.shapes = c.shapes[:0]
	for _, level := range c.buckets.Levels() {
		col := c.params.Color
		col.A = level
		c.shapes = append(c.shapes, dev.NewLineShape(c.buckets.Lines(level), c.params.StrokeWidth, col))
	}
	c.dirty = true
	c.logger.Info("precomputed street buffer",
		"visible", len(visible),
		"drawn", c.buckets.Len(),
		"filtered", len(visible)-c.buckets.Len(),
		"levels", len(c.shapes),
		"took", time.Since(start).Round(time.Millisecond))
}

// Sync rebuilds when m differs from the mapping of the last build. It
// reports whether a rebuild happened.
func (c *Compositor) Sync(dev canvas.Device, visible []streets.Segment, m viewport.Mapping) bool {
	if c.built && c.mapping.Key() == m.Key() {
		return false
	}
	c.Rebuild(dev, visible, m)
	return true
}

// Image returns the composited street layer, drawing it first if needed.
// It returns nil until the compositor has been built for a ready mapping.
func (c *Compositor) Image(dev canvas.Device) canvas.Surface {
	if !c.built || !c.mapping.Ready() {
		return nil
	}
	s := c.mapping.Screen()
	if c.image != nil {
		if w, h := c.image.Size(); w != s.Width || h != s.Height {
			c.image = nil
		}
	}
	if c.image == nil {
		c.image = dev.NewSurface(s.Width, s.Height)
		c.dirty = true
	}
	if c.dirty {
		c.image.Fill(color.Transparent)
		dx, dy := c.mapping.Offset()
		for _, shape := range c.shapes {
			c.image.DrawShape(shape, dx, dy)
		}
		c.dirty = false
		c.logger.Debug("street buffer created", "shapes", len(c.shapes))
	}
	return c.image
}

// Segments is the number of street segments in the baked layer.
func (c *Compositor) Segments() int { return c.buckets.Len() }

func (c *Compositor) Buckets() Buckets { return c.buckets }
