package porthole

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sudorandom/porthole/pkg/config"
)

// Action is a user command handled between frames.
type Action int

const (
	ActionNone Action = iota
	ActionSnapshot
	ActionToggleDiagnostics
	ActionQuit
)

// Engine hosts a Session as an ebiten game.
type Engine struct {
	cfg     config.Config
	logger  *log.Logger
	builder *Builder
	device  *Device
	session *Session

	snapshots       int
	captureNextDraw bool
	pending         sync.WaitGroup
}

func NewEngine(cfg config.Config, builder *Builder, device *Device, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, logger: logger, builder: builder, device: device}
}

// Setup builds the session. It must run before the game loop starts.
func (e *Engine) Setup() error {
	s, err := e.builder.Build(e.device)
	if err != nil {
		return err
	}
	e.session = s
	return nil
}

func (e *Engine) Layout(w, h int) (int, int) { return e.cfg.Canvas.Width, e.cfg.Canvas.Height }

func (e *Engine) Update() error {
	for _, a := range pressedActions() {
		if err := e.apply(a); err != nil {
			return err
		}
	}
	return nil
}

func pressedActions() []Action {
	var actions []Action
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		actions = append(actions, ActionSnapshot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		actions = append(actions, ActionToggleDiagnostics)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		actions = append(actions, ActionQuit)
	}
	return actions
}

func (e *Engine) apply(a Action) error {
	switch a {
	case ActionSnapshot:
		e.captureNextDraw = true
	case ActionToggleDiagnostics:
		if e.session != nil {
			e.session.ToggleDiagnostics()
		}
	case ActionQuit:
		e.logger.Info("quit requested")
		return ebiten.Termination
	}
	return nil
}

func (e *Engine) Draw(screen *ebiten.Image) {
	dst := e.device.Wrap(screen)
	if e.session == nil {
		dst.Fill(e.cfg.Colors.Background.Opaque())
	} else {
		e.session.Render(dst, e.device, Frame{FPS: ebiten.ActualFPS()})
	}
	if e.captureNextDraw {
		e.captureNextDraw = false
		e.captureFrame(screen)
	}
}

// Close waits for snapshots still being written.
func (e *Engine) Close() {
	e.pending.Wait()
}
