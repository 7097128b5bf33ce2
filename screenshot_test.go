package texmorph

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCaptureFileName(t *testing.T) {
	tests := []struct {
		c    Capture
		want string
	}{
		{Capture{"swap", 0.5}, "swap_t0500.png"},
		{Capture{"swap", 1}, "swap_t1000.png"},
		{Capture{"x^2 + y^2", 0.25}, "x_2___y_2_t0250.png"},
		{Capture{"\\frac{a}{b}", 0}, "_frac_a__b__t0000.png"},
		{Capture{"  ", 0.1}, "morph_t0100.png"},
	}
	for _, tt := range tests {
		if got := tt.c.FileName(); got != tt.want {
			t.Errorf("%+v.FileName() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestCaptureAtWaitsForProgress(t *testing.T) {
	s := NewScene()
	f := newFixture([]float64{0}, []float64{10})
	s.Root().AddChild(f.parent)
	s.AddMorph("slide", NewMorphTween(f.morph(t, AlignmentTable{Transition}, nil), 1))
	s.CaptureAt("slide", 0.5)
	s.CaptureAt("slide", 2)
	s.CaptureAt("other", 0)

	if err := s.Advance(0.25); err != nil {
		t.Fatal(err)
	}
	if len(s.ready) != 0 {
		t.Fatalf("ready = %v before t reached 0.5", s.ready)
	}

	if err := s.Advance(0.25); err != nil {
		t.Fatal(err)
	}
	if len(s.ready) != 1 || s.ready[0] != (Capture{"slide", 0.5}) {
		t.Fatalf("ready = %v, want the t=0.5 capture", s.ready)
	}

	if err := s.Advance(0.5); err != nil {
		t.Fatal(err)
	}
	// The out-of-range request was clamped to the end state.
	if len(s.ready) != 2 || s.ready[1] != (Capture{"slide", 1}) {
		t.Errorf("ready = %v, want the end capture second", s.ready)
	}
	if len(s.pending) != 1 || s.pending[0].Morph != "other" {
		t.Errorf("pending = %v, want only the other morph", s.pending)
	}
}

func TestStraightAlpha(t *testing.T) {
	pix := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // empty
	}
	img := straightAlpha(pix, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
	if pix[0] != 128 {
		t.Error("source pixels modified")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), Capture{"swap", 1}.FileName())
	if err := writePNG(path, straightAlpha(make([]byte, 16), 2, 2)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}

func TestCaptureDirDefault(t *testing.T) {
	if dir := NewScene().CaptureDir; dir != "captures" {
		t.Errorf("CaptureDir = %q, want %q", dir, "captures")
	}
}
