// Package streetgraph loads a street network from GeoJSON and answers the
// routing questions the renderer needs: where a node is, which node is
// nearest a point, and the shortest route between two points.
package streetgraph

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
	"github.com/sudorandom/porthole/pkg/streets"
)

var (
	ErrEmptyGraph = errors.New("street graph has no nodes")
	ErrNoPath     = errors.New("no path between nodes")
)

type arc struct {
	to     streets.NodeID
	length float64
}

type node struct {
	id streets.NodeID
	p  orb.Point
}

func (n node) Point() orb.Point { return n.p }

// Graph is a planar street network. It is read-only once loaded.
type Graph struct {
	proj   Projection
	nodes  []orb.Point
	ids    map[[2]float64]streets.NodeID
	edges  []streets.Edge
	adj    map[streets.NodeID][]arc
	places map[string]orb.Point
	index  *quadtree.Quadtree
}

// LoadFile reads a GeoJSON file from disk.
func LoadFile(path string, logger *log.Logger) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading street network: %w", err)
	}
	return LoadGeoJSON(data, logger)
}

// LoadGeoJSON builds a graph from a feature collection. LineString and
// MultiLineString features become streets, with consecutive vertices joined
// by an edge. Vertices with identical coordinates are merged into one node.
// A "oneway" property of "yes", "true" or "1" (or "-1" for reversed) limits
// routing to one direction; rendering always uses every edge. Point features
// with a "name" property are kept as named places.
func LoadGeoJSON(data []byte, logger *log.Logger) (*Graph, error) {
	if logger == nil {
		logger = log.Default()
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing street network: %w", err)
	}

	var lines []line
	var latSum float64
	var latN int
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		dir := onewayDir(f.Properties["oneway"])
		switch {
		case f.Geometry.IsLineString():
			lines = append(lines, line{coords: f.Geometry.LineString, dir: dir})
		case f.Geometry.IsMultiLineString():
			for _, ls := range f.Geometry.MultiLineString {
				lines = append(lines, line{coords: ls, dir: dir})
			}
		}
	}
	for _, l := range lines {
		for _, c := range l.coords {
			if len(c) >= 2 {
				latSum += c[1]
				latN++
			}
		}
	}
	if latN == 0 {
		return nil, ErrEmptyGraph
	}

	g := &Graph{
		proj:   Projection{RefLat: latSum / float64(latN)},
		ids:    make(map[[2]float64]streets.NodeID),
		adj:    make(map[streets.NodeID][]arc),
		places: make(map[string]orb.Point),
	}
	for _, l := range lines {
		var prev streets.NodeID = -1
		for _, c := range l.coords {
			if len(c) < 2 {
				continue
			}
			id := g.node(c[0], c[1])
			if prev >= 0 && prev != id {
				g.addEdge(prev, id, l.dir)
			}
			prev = id
		}
	}
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			continue
		}
		if name, ok := f.Properties["name"].(string); ok && name != "" {
			g.places[name] = g.proj.Project(f.Geometry.Point[0], f.Geometry.Point[1])
		}
	}
	if err := g.buildIndex(); err != nil {
		return nil, err
	}

	logger.Info("loaded street network",
		"features", len(fc.Features),
		"nodes", len(g.nodes),
		"edges", len(g.edges),
		"places", len(g.places))
	return g, nil
}

type line struct {
	coords [][]float64
	dir    int
}

func onewayDir(v interface{}) int {
	switch v := v.(type) {
	case bool:
		if v {
			return 1
		}
	case string:
		switch v {
		case "yes", "true", "1":
			return 1
		case "-1", "reverse":
			return -1
		}
	case float64:
		if v == 1 {
			return 1
		}
		if v == -1 {
			return -1
		}
	}
	return 0
}

func (g *Graph) node(lng, lat float64) streets.NodeID {
	key := [2]float64{lng, lat}
	if id, ok := g.ids[key]; ok {
		return id
	}
	id := streets.NodeID(len(g.nodes))
	g.nodes = append(g.nodes, g.proj.Project(lng, lat))
	g.ids[key] = id
	return id
}

func (g *Graph) addEdge(u, v streets.NodeID, dir int) {
	g.edges = append(g.edges, streets.Edge{From: u, To: v})
	length := planar.Distance(g.nodes[u], g.nodes[v])
	if dir >= 0 {
		g.adj[u] = append(g.adj[u], arc{to: v, length: length})
	}
	if dir <= 0 {
		g.adj[v] = append(g.adj[v], arc{to: u, length: length})
	}
}

func (g *Graph) buildIndex() error {
	b := orb.Bound{Min: g.nodes[0], Max: g.nodes[0]}
	for _, p := range g.nodes[1:] {
		b = b.Extend(p)
	}
	g.index = quadtree.New(b)
	for i, p := range g.nodes {
		if err := g.index.Add(node{id: streets.NodeID(i), p: p}); err != nil {
			return fmt.Errorf("indexing node %d: %w", i, err)
		}
	}
	return nil
}

func (g *Graph) Position(id streets.NodeID) (orb.Point, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return orb.Point{}, false
	}
	return g.nodes[id], true
}

func (g *Graph) Edges() []streets.Edge { return g.edges }

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) Bound() orb.Bound { return g.index.Bound() }

func (g *Graph) Projection() Projection { return g.proj }

// Place returns a named point feature, projected.
func (g *Graph) Place(name string) (orb.Point, bool) {
	p, ok := g.places[name]
	return p, ok
}

// Places lists the names of all named points, sorted.
func (g *Graph) Places() []string {
	names := make([]string, 0, len(g.places))
	for n := range g.places {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Nearest returns the node closest to p.
func (g *Graph) Nearest(p orb.Point) (streets.NodeID, error) {
	if g == nil || len(g.nodes) == 0 {
		return 0, ErrEmptyGraph
	}
	found := g.index.Find(p)
	if found == nil {
		return 0, ErrEmptyGraph
	}
	return found.(node).id, nil
}

// Route returns node positions along the shortest street route between the
// nodes nearest origin and destination.
func (g *Graph) Route(origin, destination orb.Point) ([]orb.Point, error) {
	from, err := g.Nearest(origin)
	if err != nil {
		return nil, err
	}
	to, err := g.Nearest(destination)
	if err != nil {
		return nil, err
	}
	ids, _, err := g.ShortestPath(from, to)
	if err != nil {
		return nil, err
	}
	points := make([]orb.Point, len(ids))
	for i, id := range ids {
		points[i] = g.nodes[id]
	}
	return points, nil
}
