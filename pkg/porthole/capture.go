package porthole

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// snapshotPath returns the first unused porthole-NNNN.png in dir, starting
// at n. It also returns the number it picked.
func snapshotPath(dir string, n int) (string, int) {
	for ; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("porthole-%04d.png", n))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, n
		}
	}
}

// captureFrame copies img to CPU memory and writes it as a PNG in the
// background.
func (e *Engine) captureFrame(img *ebiten.Image) {
	if err := os.MkdirAll(e.cfg.CaptureDir, 0o755); err != nil {
		e.logger.Error("creating capture directory", "err", err)
		return
	}
	path, n := snapshotPath(e.cfg.CaptureDir, e.snapshots+1)
	e.snapshots = n

	rgba := image.NewRGBA(img.Bounds())
	img.ReadPixels(rgba.Pix)

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		if err := writePNG(path, rgba); err != nil {
			e.logger.Error("saving snapshot", "err", err)
			return
		}
		e.logger.Info("saved snapshot", "path", path)
	}()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
