package porthole

import (
	"bytes"
	"image"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sudorandom/porthole/pkg/canvas"
	"golang.org/x/image/font/gofont/goregular"
)

// Device creates ebiten-backed surfaces and line shapes.
type Device struct {
	face  *text.GoTextFace
	white *ebiten.Image
}

func NewDevice(face *text.GoTextFace) *Device { return &Device{face: face} }

// Wrap adapts an existing ebiten image, usually the screen.
func (d *Device) Wrap(img *ebiten.Image) *Surface {
	return &Surface{img: img, face: d.face, white: d.whitePixel()}
}

// whitePixel is the triangle source for stroked shapes. It is the centre
// of a 3x3 white image so sampling never reaches the edge.
func (d *Device) whitePixel() *ebiten.Image {
	if d.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		d.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return d.white
}

func (d *Device) NewSurface(w, h int) canvas.Surface {
	return d.Wrap(ebiten.NewImage(w, h))
}

// NewLineShape strokes lines into triangle batches up front so drawing the
// shape is one DrawTriangles call per batch.
func (d *Device) NewLineShape(lines []canvas.Line, width float32, c color.Color) canvas.Shape {
	return &lineShape{lines: len(lines), batches: strokeBatches(lines, width, c)}
}

// linesPerBatch bounds a batch well under the uint16 index limit. A butt
// capped segment strokes to four vertices.
const linesPerBatch = 4096

type strokeBatch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func strokeBatches(lines []canvas.Line, width float32, c color.Color) []strokeBatch {
	if len(lines) == 0 || width <= 0 {
		return nil
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	cr, cg, cb, ca := float32(nc.R)/0xff, float32(nc.G)/0xff, float32(nc.B)/0xff, float32(nc.A)/0xff
	op := &vector.StrokeOptions{Width: width}

	var batches []strokeBatch
	for start := 0; start < len(lines); start += linesPerBatch {
		end := min(start+linesPerBatch, len(lines))
		var path vector.Path
		for _, l := range lines[start:end] {
			path.MoveTo(l.X1, l.Y1)
			path.LineTo(l.X2, l.Y2)
		}
		vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = cr, cg, cb, ca
		}
		batches = append(batches, strokeBatch{vertices: vs, indices: is})
	}
	return batches
}

type lineShape struct {
	lines   int
	batches []strokeBatch
	moved   []ebiten.Vertex
}

func (s *lineShape) Lines() int { return s.lines }

// at returns the vertices of batch i translated by dx, dy.
func (s *lineShape) at(i int, dx, dy float32) []ebiten.Vertex {
	vs := s.batches[i].vertices
	if dx == 0 && dy == 0 {
		return vs
	}
	s.moved = append(s.moved[:0], vs...)
	for j := range s.moved {
		s.moved[j].DstX += dx
		s.moved[j].DstY += dy
	}
	return s.moved
}

// Surface draws onto an ebiten image.
type Surface struct {
	img   *ebiten.Image
	face  *text.GoTextFace
	white *ebiten.Image
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Fill(c color.Color) {
	if _, _, _, a := c.RGBA(); a == 0 {
		s.img.Clear()
		return
	}
	s.img.Fill(c)
}

func (s *Surface) FillCircle(cx, cy, r float32, c color.Color) {
	vector.DrawFilledCircle(s.img, cx, cy, r, c, true)
}

func (s *Surface) FillRect(x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(s.img, x, y, w, h, c, false)
}

func (s *Surface) DrawShape(sh canvas.Shape, dx, dy float64) {
	ls, ok := sh.(*lineShape)
	if !ok || s.white == nil {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for i, b := range ls.batches {
		s.img.DrawTriangles(ls.at(i, float32(dx), float32(dy)), b.indices, s.white, op)
	}
}

func (s *Surface) DrawSurface(src canvas.Surface, dx, dy float64) {
	es, ok := src.(*Surface)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(dx, dy)
	s.img.DrawImage(es.img, op)
}

// Text draws s with its baseline at y.
func (s *Surface) Text(str string, x, y float64, c color.Color) {
	if s.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.face, op)
}

// LoadFace loads a TrueType or OpenType font for the overlay. An empty path
// or an unreadable font falls back to Go Regular.
func LoadFace(path string, size float64, logger *log.Logger) (*text.GoTextFace, error) {
	if logger == nil {
		logger = log.Default()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var src *text.GoTextFaceSource
			src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
			if err == nil {
				return &text.GoTextFace{Source: src, Size: size}, nil
			}
		}
		logger.Warn("font unavailable, using Go Regular", "path", path, "err", err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}
