package label

import (
	"bytes"
	"testing"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator("")
	if err != nil {
		t.Fatalf("NewGenerator() = %v", err)
	}
	return g
}

func TestMakeIsDeterministic(t *testing.T) {
	g := newGenerator(t)
	a := g.Make("Earth", 6)
	b := g.Make("Earth", 6)
	if a.Image.Bounds() != b.Image.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Image.Bounds(), b.Image.Bounds())
	}
	if a.Scale != b.Scale {
		t.Errorf("scale differs: %v vs %v", a.Scale, b.Scale)
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("pixels differ between identical calls")
	}
}

func TestMakeDimensionsAndScale(t *testing.T) {
	g := newGenerator(t)
	tests := []struct {
		text string
		size float32
		want [3]float32
	}{
		{"Sun", 8, [3]float32{8, 4, 1}},
		{"Mercury", 6, [3]float32{6, 3, 1}},
		{"Moon", 4, [3]float32{4, 2, 1}},
	}
	for _, tt := range tests {
		l := g.Make(tt.text, tt.size)
		if b := l.Image.Bounds(); b.Dx() != RasterSize || b.Dy() != RasterSize {
			t.Errorf("%s: raster %v, want %dx%d", tt.text, b, RasterSize, RasterSize)
		}
		if l.Scale != tt.want {
			t.Errorf("%s: scale %v, want %v", tt.text, l.Scale, tt.want)
		}
		if l.Text != tt.text {
			t.Errorf("Text = %q", l.Text)
		}
	}
}

func TestMakeDrawsCenteredInk(t *testing.T) {
	l := newGenerator(t).Make("Saturn", 6)
	minX, maxX, minY, maxY := RasterSize, -1, RasterSize, -1
	for y := 0; y < RasterSize; y++ {
		for x := 0; x < RasterSize; x++ {
			if l.Image.RGBAAt(x, y).A == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		t.Fatal("no text drawn")
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	if cx < RasterSize/2-20 || cx > RasterSize/2+20 {
		t.Errorf("ink centered at x=%d", cx)
	}
	if cy < RasterSize/2-30 || cy > RasterSize/2+30 {
		t.Errorf("ink centered at y=%d", cy)
	}
}

func TestMakeEmptyTextIsTransparent(t *testing.T) {
	l := newGenerator(t).Make("", 6)
	for i := 3; i < len(l.Image.Pix); i += 4 {
		if l.Image.Pix[i] != 0 {
			t.Fatal("empty label has ink")
		}
	}
}
