package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"

	"solar-system/internal/logger"
)

// ErrNotFound is returned when a texture is in none of the search directories.
var ErrNotFound = errors.New("texture not found")

// DefaultMaxEdge caps the longest side of a decoded texture.
const DefaultMaxEdge = 2048

// textureDirs are tried in order so textures are found whether run from repo root or cmd/solarsystem.
var textureDirs = []string{
	"assets/textures",
	"../../assets/textures",
}

// Result is a finished texture load. On failure Image is a small placeholder in the
// requested fallback color and Err says why.
type Result struct {
	Key   string
	Image *image.RGBA
	Err   error
}

// Placeholder reports whether the result carries the fallback image instead of the texture.
func (r Result) Placeholder() bool {
	return r.Err != nil
}

// Observer is told about every finished load (e.g. metrics).
type Observer func(key string, err error)

// Loader decodes textures on background goroutines. Request never blocks; finished results
// are collected with Poll on the goroutine that owns the GPU context.
type Loader struct {
	dirs    []string
	maxEdge int
	log     *logger.Logger
	observe Observer

	results chan Result
	wg      sync.WaitGroup
	mu      sync.Mutex
	pending int
}

// NewLoader returns a loader searching extraDir (if set) before the default texture dirs.
// maxEdge <= 0 uses DefaultMaxEdge.
func NewLoader(log *logger.Logger, extraDir string, maxEdge int) *Loader {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	var dirs []string
	if extraDir != "" {
		dirs = append(dirs, extraDir)
	}
	dirs = append(dirs, textureDirs...)
	return &Loader{
		dirs:    dirs,
		maxEdge: maxEdge,
		log:     log,
		results: make(chan Result, 32),
	}
}

// SetObserver registers fn to run after each load, on the loading goroutine.
func (l *Loader) SetObserver(fn Observer) {
	l.observe = fn
}

// Resolve returns the first existing path for name across the search dirs.
func (l *Loader) Resolve(name string) (string, error) {
	for _, dir := range l.dirs {
		p := filepath.Clean(filepath.Join(dir, name))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Request starts loading name in the background. key identifies the result in Poll.
func (l *Loader) Request(key, name string, fallback color.RGBA) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.load(name)
		if err != nil {
			l.log.Warnf("texture %s (%s): %v; using placeholder", key, name, err)
			img = Placeholder(fallback)
		}
		if l.observe != nil {
			l.observe(key, err)
		}
		l.results <- Result{Key: key, Image: img, Err: err}
	}()
}

func (l *Loader) load(name string) (*image.RGBA, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	src, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fit(src, l.maxEdge), nil
}

// fit converts src to RGBA, scaling it down so neither side exceeds maxEdge.
func fit(src image.Image, maxEdge int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxEdge || h > maxEdge {
		if w >= h {
			h = max(1, h*maxEdge/w)
			w = maxEdge
		} else {
			w = max(1, w*maxEdge/h)
			h = maxEdge
		}
		return transform.Resize(src, w, h, transform.Linear)
	}
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}

// Placeholder returns a 2×2 image of c, shown for bodies whose texture failed.
func Placeholder(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// Poll returns every result that has finished since the last call, without blocking.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()
		default:
			return out
		}
	}
}

// Pending returns how many requests have not been returned by Poll yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait collects results until none are pending or ctx is done.
func (l *Loader) Wait(ctx context.Context) ([]Result, error) {
	var out []Result
	for l.Pending() > 0 {
		select {
		case r := <-l.results:
			out = append(out, r)
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, nil
}

// Close waits for in-flight decodes to finish. Results not yet polled are dropped.
func (l *Loader) Close() {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-l.results:
		case <-done:
			return
		}
	}
}
