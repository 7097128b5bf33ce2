package texmorph

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Capture names a frame of a running morph: the first frame drawn once the
// morph called Morph has reached normalized time At.
type Capture struct {
	Morph string
	At    float32
}

// FileName is the PNG name the capture is written under, e.g. "swap_t0500.png"
// for morph "swap" at t=0.5.
func (c Capture) FileName() string {
	return fmt.Sprintf("%s_t%04d.png", sanitizeLabel(c.Morph), int(math.Round(float64(c.At)*1000)))
}

// CaptureAt asks for a PNG of the frame where the named morph reaches t. t is
// clamped to [0, 1]; use 1 for the end state. Files land in CaptureDir.
func (s *Scene) CaptureAt(name string, t float32) {
	s.pending = append(s.pending, Capture{Morph: name, At: float32(clamp01(float64(t)))})
}

// collectCaptures moves the captures of morph name that progress has reached
// to the ready list.
func (s *Scene) collectCaptures(name string, progress float32) {
	kept := s.pending[:0]
	for _, c := range s.pending {
		if c.Morph == name && progress >= c.At {
			s.ready = append(s.ready, c)
			continue
		}
		kept = append(kept, c)
	}
	clear(s.pending[len(kept):])
	s.pending = kept
}

// writeCaptures writes every ready capture from the frame just drawn.
func (s *Scene) writeCaptures(screen *ebiten.Image) {
	if len(s.ready) == 0 {
		return
	}
	defer func() { s.ready = s.ready[:0] }()

	if err := os.MkdirAll(s.CaptureDir, 0o755); err != nil {
		s.log.Error("capture dir", "dir", s.CaptureDir, "error", err)
		return
	}

	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	img := straightAlpha(pix, b.Dx(), b.Dy())

	for _, c := range s.ready {
		path := filepath.Join(s.CaptureDir, c.FileName())
		if err := writePNG(path, img); err != nil {
			s.log.Error("capture failed", "morph", c.Morph, "t", c.At, "error", err)
			continue
		}
		s.log.Info("frame captured", "morph", c.Morph, "t", c.At, "path", path)
	}
}

// straightAlpha converts ebiten's premultiplied pixels to an NRGBA image.
func straightAlpha(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for j := i; j < i+3; j++ {
			img.Pix[j] = uint8(min(int(img.Pix[j])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps morph names usable as file names.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "morph"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, label)
}
