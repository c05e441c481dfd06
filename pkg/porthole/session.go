// Package porthole ties the viewport, street layer, markers, agents and
// diagnostics together into a per-frame render, and hosts it in an ebiten
// window.
package porthole

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/sudorandom/porthole/pkg/agents"
	"github.com/sudorandom/porthole/pkg/canvas"
	"github.com/sudorandom/porthole/pkg/config"
	"github.com/sudorandom/porthole/pkg/diag"
	"github.com/sudorandom/porthole/pkg/fade"
	"github.com/sudorandom/porthole/pkg/pulse"
	"github.com/sudorandom/porthole/pkg/streets"
	"github.com/sudorandom/porthole/pkg/viewport"
)

var (
	ErrNoGraph     = errors.New("no street graph")
	ErrNoEndpoints = errors.New("origin and destination not set")
)

// borderWidth is the rim drawn around the porthole disc, in pixels.
const borderWidth = 2

// Frame carries the per-frame inputs from the host.
type Frame struct {
	FPS float64
}

// Builder assembles a Session. The pieces are prepared in dependency order
// in Build: viewport, then the projected streets, then the baked street
// layer, then the agents.
type Builder struct {
	cfg    config.Config
	logger *log.Logger

	graph   streets.Graph
	source  agents.Source
	origin  orb.Point
	dest    orb.Point
	hasEnds bool
	screen  *viewport.Screen
}

func NewBuilder(cfg config.Config, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{cfg: cfg, logger: logger}
}

func (b *Builder) Graph(g streets.Graph) *Builder {
	b.graph = g
	return b
}

// Endpoints sets the origin and destination in world coordinates.
func (b *Builder) Endpoints(origin, destination orb.Point) *Builder {
	b.origin, b.dest, b.hasEnds = origin, destination, true
	return b
}

// Paths sets where agent routes come from. Without one the agents stay
// parked and nothing moves.
func (b *Builder) Paths(src agents.Source) *Builder {
	b.source = src
	return b
}

// Screen overrides the render target size taken from the config.
func (b *Builder) Screen(s viewport.Screen) *Builder {
	b.screen = &s
	return b
}

func (b *Builder) Build(dev canvas.Device) (*Session, error) {
	if b.graph == nil {
		return nil, ErrNoGraph
	}
	if !b.hasEnds {
		return nil, ErrNoEndpoints
	}
	start := time.Now()
	cfg := b.cfg

	view := viewport.Compute(b.origin, b.dest, viewport.Params{
		Padding: cfg.View.Padding,
		MinSpan: cfg.View.MinSpan,
	})
	screen := viewport.Screen{
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		Zoom:        cfg.Canvas.Zoom,
		CircleRatio: cfg.Canvas.CircleRatio,
	}
	if b.screen != nil {
		screen = *b.screen
	}
	m := viewport.NewMapping(view, screen)
	if !m.Ready() {
		return nil, fmt.Errorf("viewport %.0fx%.0f on %dx%d screen: %w",
			view.Width(), view.Height(), screen.Width, screen.Height, config.ErrInvalid)
	}
	b.logger.Info("computed viewport",
		"width", view.Width(),
		"height", view.Height(),
		"scale", m.Scale())

	projected := streets.Project(b.graph, view, cfg.Fade.BufferFactor, b.logger)

	comp := fade.NewCompositor(fade.Params{
		EdgeStart:    cfg.Fade.EdgeStart,
		Intensity:    cfg.Fade.Intensity,
		BufferFactor: cfg.Fade.BufferFactor,
		MinOpacity:   cfg.Fade.MinOpacity,
		StrokeWidth:  float32(cfg.Fade.StrokeWidth),
		Color:        cfg.Colors.Street.Opaque(),
	}, b.logger)
	comp.Rebuild(dev, projected.Visible, m)

	path := agents.ScreenPath(b.source, b.origin, b.dest, m, b.logger)
	swarm := agents.NewSwarm(path, cfg.Agents.Count, cfg.Agents.Speed, cfg.Agents.Spread)

	clock := pulse.NewClock(pulse.Params{
		Speed:     cfg.Pulse.Speed,
		Amplitude: cfg.Pulse.Amplitude,
		BaseSize:  cfg.Pulse.BaseSize,
		Rings:     cfg.Pulse.Rings,
		GlowScale: cfg.Pulse.GlowScale,
		RingAlpha: cfg.Pulse.RingAlpha,
	})

	s := &Session{
		cfg:        cfg,
		logger:     b.logger,
		mapping:    m,
		origin:     b.origin,
		dest:       b.dest,
		streets:    projected,
		compositor: comp,
		clock:      clock,
		swarm:      swarm,
		overlay:    diag.NewOverlay(cfg.Diagnostics.Window, cfg.Diagnostics.Enabled, cfg.Colors.Text.Opaque()),
	}
	if cfg.Canvas.TPS > 0 {
		s.nominalDT = 1 / float64(cfg.Canvas.TPS)
	} else {
		s.nominalDT = 1.0 / 60
	}
	b.logger.Info("session ready",
		"agents", len(swarm.Agents),
		"path_length", path.Total(),
		"took", time.Since(start).Round(time.Millisecond))
	return s, nil
}

// Session is the state of one rendered route.
type Session struct {
	cfg    config.Config
	logger *log.Logger

	mapping    viewport.Mapping
	origin     orb.Point
	dest       orb.Point
	streets    streets.Result
	compositor *fade.Compositor
	clock      *pulse.Clock
	swarm      *agents.Swarm
	overlay    *diag.Overlay
	nominalDT  float64
}

func (s *Session) Mapping() viewport.Mapping { return s.mapping }

func (s *Session) Swarm() *agents.Swarm { return s.swarm }

func (s *Session) Overlay() *diag.Overlay { return s.overlay }

func (s *Session) Streets() streets.Result { return s.streets }

// ToggleDiagnostics flips the diagnostics panel and returns its new state.
func (s *Session) ToggleDiagnostics() bool {
	on := s.overlay.Toggle()
	s.logger.Debug("diagnostics toggled", "enabled", on)
	return on
}

// Render draws one frame onto dst. The order is fixed: background, porthole
// disc, street layer, then markers and agents in the view's local frame,
// and finally the diagnostics panel in screen space. A nil session draws
// nothing; the host is expected to clear the frame itself.
func (s *Session) Render(dst canvas.Surface, dev canvas.Device, f Frame) {
	if s == nil {
		return
	}
	colors := s.cfg.Colors
	dst.Fill(colors.Background.Opaque())
	if !s.mapping.Ready() {
		return
	}
	s.overlay.Observe(f.FPS)

	cx, cy, r := s.mapping.Circle()
	dst.FillCircle(float32(cx), float32(cy), float32(r)+borderWidth, colors.Border.Opaque())
	dst.FillCircle(float32(cx), float32(cy), float32(r), colors.Background.Opaque())

	s.compositor.Sync(dev, s.streets.Visible, s.mapping)
	if img := s.compositor.Image(dev); img != nil {
		dst.DrawSurface(img, 0, 0)
	}

	s.clock.Tick()
	dt := agents.DeltaTime(f.FPS, s.nominalDT)
	dx, dy := s.mapping.Offset()
	canvas.WithOffset(dst, dx, dy, func(local canvas.Surface) {
		s.drawMarker(local, s.origin, s.clock.Origin(), colors.Origin)
		s.drawMarker(local, s.dest, s.clock.Destination(), colors.Dest)

		if !s.swarm.Routed() {
			return
		}
		s.swarm.Update(dt)
		agentColor := colors.Agent.Opaque()
		size := float32(s.cfg.Agents.Size) / 2
		for _, p := range s.swarm.Positions() {
			local.FillCircle(float32(p.X()), float32(p.Y()), size, agentColor)
		}
	})

	s.overlay.Draw(dst, f.FPS, s.compositor.Segments())
}

func (s *Session) drawMarker(dst canvas.Surface, p orb.Point, amp float64, c config.RGB) {
	x, y := s.mapping.Local(p)
	m := pulse.Halo(amp, s.clock.Params)
	for _, ring := range m.Rings {
		if ring.Diameter <= 0 {
			continue
		}
		dst.FillCircle(float32(x), float32(y), float32(ring.Diameter/2), c.RGBA(ring.Alpha))
	}
	dst.FillCircle(float32(x), float32(y), float32(m.Core/2), c.Opaque())
}
