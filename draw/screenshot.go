package draw

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next frame drawn by Draw. The
// PNG lands in ScreenshotDir as <time>_<n>_<label>.png, n counting captures
// made by this renderer.
func (r *Renderer) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// shotEncoder favors speed; captures happen mid-session.
var shotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// flushScreenshots writes one PNG per queued label. Called at the end of
// Draw, after the scene is on dst.
func (r *Renderer) flushScreenshots(dst *ebiten.Image) {
	if len(r.screenshotQueue) == 0 {
		return
	}
	defer func() { r.screenshotQueue = r.screenshotQueue[:0] }()

	dir := r.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[gui] screenshot: %v\n", err)
		return
	}

	frame := captureFrame(dst)
	stamp := time.Now().Format("20060102_150405")
	var errs []error
	for _, label := range r.screenshotQueue {
		r.shotCount++
		path := filepath.Join(dir, shotName(stamp, r.shotCount, label))
		errs = append(errs, savePNG(path, frame))
	}
	if err := errors.Join(errs...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[gui] screenshot: %v\n", err)
	}
}

// captureFrame copies dst into an image.RGBA. Both hold premultiplied
// pixels, so the PNG encoder does the conversion to straight alpha.
func captureFrame(dst *ebiten.Image) *image.RGBA {
	frame := image.NewRGBA(dst.Bounds())
	dst.ReadPixels(frame.Pix)
	return frame
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encodeFrame(f, img)
}

func encodeFrame(w io.Writer, img image.Image) error {
	if err := shotEncoder.Encode(w, img); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

// shotName builds a file name from the capture time, sequence number and
// label. Label runes outside [A-Za-z0-9.-] become '_'.
func shotName(stamp string, n int, label string) string {
	label = strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '.':
			return c
		}
		return '_'
	}, strings.TrimSpace(label))
	if label == "" {
		label = "frame"
	}
	return fmt.Sprintf("%s_%03d_%s.png", stamp, n, label)
}
