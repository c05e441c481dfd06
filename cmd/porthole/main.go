package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/paulmach/orb"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/porthole/pkg/config"
	"github.com/sudorandom/porthole/pkg/porthole"
	"github.com/sudorandom/porthole/pkg/streetgraph"
)

type CLI struct {
	Config      string `help:"TOML file overriding the built-in settings." type:"path"`
	Streets     string `help:"GeoJSON street network, as a file or an http(s) URL. Defaults to the bundled demo grid."`
	Origin      string `help:"Origin as a place name from the network or \"lat,lng\"." default:"origin"`
	Destination string `help:"Destination as a place name from the network or \"lat,lng\"." default:"destination"`

	Width      int    `help:"Canvas width in pixels."`
	Height     int    `help:"Canvas height in pixels."`
	TPS        int    `help:"Ticks per second." name:"tps"`
	Agents     int    `help:"Number of agents walking the route." default:"-1"`
	Spread     bool   `help:"Space agents evenly along the route instead of starting together."`
	CaptureDir string `help:"Directory for snapshots saved with the S key."`
	CacheDir   string `help:"Where downloaded street networks are kept." default:"data/cache"`
	Debug      bool   `help:"Enable debug logging."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("porthole"),
		kong.Description("Render a route through a street network inside a circular porthole."),
		kong.UsageOnError())

	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	log.SetDefault(logger)

	if err := run(cli, logger); err != nil {
		logger.Fatal("porthole failed", "err", err)
	}
}

func run(cli CLI, logger *log.Logger) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	var g *streetgraph.Graph
	if cli.Streets != "" {
		var path string
		if path, err = streetgraph.Fetch(cli.Streets, cli.CacheDir, logger); err != nil {
			return err
		}
		g, err = streetgraph.LoadFile(path, logger)
	} else {
		logger.Info("using bundled demo network")
		g, err = streetgraph.LoadGeoJSON(porthole.DemoStreets, logger)
	}
	if err != nil {
		return err
	}

	origin, err := resolvePoint(g, cli.Origin)
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	dest, err := resolvePoint(g, cli.Destination)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	face, err := porthole.LoadFace(cfg.Canvas.FontPath, cfg.Canvas.FontSize, logger)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	builder := porthole.NewBuilder(cfg, logger).
		Graph(g).
		Endpoints(origin, dest).
		Paths(g)
	engine := porthole.NewEngine(cfg, builder, porthole.NewDevice(face), logger)
	if err := engine.Setup(); err != nil {
		return err
	}
	defer engine.Close()

	ebiten.SetTPS(cfg.Canvas.TPS)
	ebiten.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)
	ebiten.SetWindowTitle("Porthole")
	logger.Info("starting", "width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "tps", cfg.Canvas.TPS)
	return ebiten.RunGame(engine)
}

// loadConfig applies the config file and then command-line overrides.
func loadConfig(cli CLI) (config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return cfg, err
	}
	if cli.Width > 0 {
		cfg.Canvas.Width = cli.Width
	}
	if cli.Height > 0 {
		cfg.Canvas.Height = cli.Height
	}
	if cli.TPS > 0 {
		cfg.Canvas.TPS = cli.TPS
	}
	if cli.Agents >= 0 {
		cfg.Agents.Count = cli.Agents
	}
	if cli.Spread {
		cfg.Agents.Spread = true
	}
	if cli.CaptureDir != "" {
		cfg.CaptureDir = cli.CaptureDir
	}
	return cfg, cfg.Validate()
}

// resolvePoint accepts a place name known to g or a "lat,lng" pair inside
// the network's extent.
func resolvePoint(g *streetgraph.Graph, s string) (orb.Point, error) {
	if p, ok := g.Place(s); ok {
		return p, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("unknown place %q (known: %s)", s, strings.Join(g.Places(), ", "))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	p := g.Projection().Project(lng, lat)
	if !g.Bound().Contains(p) {
		return orb.Point{}, fmt.Errorf("%q is outside the street network", s)
	}
	return p, nil
}
