package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar-system/internal/logger"
)

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func wait(t *testing.T, l *Loader) map[string]Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	byKey := make(map[string]Result, len(results))
	for _, r := range results {
		byKey[r.Key] = r
	}
	return byKey
}

func TestLoadAndPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "earth.png", 64, 32)

	l := NewLoader(logger.Discard(), dir, 0)
	var observed int
	done := make(chan struct{}, 2)
	l.SetObserver(func(string, error) { done <- struct{}{} })
	l.Request("Earth", "earth.png", color.RGBA{0, 0, 255, 255})
	l.Request("Mars", "no-such-mars.jpg", color.RGBA{255, 0, 0, 255})

	got := wait(t, l)
	for range 2 {
		<-done
		observed++
	}
	if observed != 2 {
		t.Errorf("observer ran %d times", observed)
	}

	earth := got["Earth"]
	if earth.Placeholder() {
		t.Fatalf("Earth failed: %v", earth.Err)
	}
	if b := earth.Image.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("Earth bounds %v", b)
	}

	mars := got["Mars"]
	if !mars.Placeholder() || !errors.Is(mars.Err, ErrNotFound) {
		t.Fatalf("Mars err = %v, want ErrNotFound", mars.Err)
	}
	if c := mars.Image.RGBAAt(0, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("placeholder color %v", c)
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d", l.Pending())
	}
}

func TestLoadDownscales(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "jupiter.png", 400, 100)
	l := NewLoader(logger.Discard(), dir, 100)
	l.Request("Jupiter", "jupiter.png", color.RGBA{})
	r := wait(t, l)["Jupiter"]
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if b := r.Image.Bounds(); b.Dx() != 100 || b.Dy() != 25 {
		t.Errorf("bounds %v, want 100x25", b)
	}
}

func TestPollDoesNotBlock(t *testing.T) {
	l := NewLoader(logger.Discard(), t.TempDir(), 0)
	if got := l.Poll(); len(got) != 0 {
		t.Errorf("Poll() on idle loader = %v", got)
	}
}

func TestCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sun.jpg"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(logger.Discard(), dir, 0)
	l.Request("Sun", "sun.jpg", color.RGBA{255, 255, 0, 255})
	r := wait(t, l)["Sun"]
	if !r.Placeholder() {
		t.Fatal("corrupt file decoded")
	}
	if errors.Is(r.Err, ErrNotFound) {
		t.Errorf("err = %v, want decode error", r.Err)
	}
}
