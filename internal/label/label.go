package label

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"solar-system/internal/fonts"
)

const (
	// RasterSize is the side of the square image every label is drawn on.
	RasterSize = 256
	// FontSize is the pixel size of label text.
	FontSize = 60
)

// Label is a body name rendered once to an image. Scale is the billboard size in world units
// (width, height, depth); the renderer stretches the square raster to it.
type Label struct {
	Text  string
	Image *image.RGBA
	Scale [3]float32
}

// Generator draws labels with one face. Not safe for concurrent use; labels are made on the
// main goroutine during scene construction.
type Generator struct {
	face font.Face
}

// NewGenerator loads fontName (see fonts.Face; empty = Go Bold).
func NewGenerator(fontName string) (*Generator, error) {
	face, err := fonts.Face(fontName, FontSize)
	if err != nil {
		return nil, fmt.Errorf("label: font %q: %w", fontName, err)
	}
	return &Generator{face: face}, nil
}

// Make draws text in white, centered horizontally and vertically on a transparent
// RasterSize×RasterSize image, and scales the billboard to (size, size/2, 1).
// The same inputs always produce the same pixels.
func (g *Generator) Make(text string, size float32) *Label {
	img := image.NewRGBA(image.Rect(0, 0, RasterSize, RasterSize))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.White, Face: g.face}
	m := g.face.Metrics()
	width := d.MeasureString(text)
	center := fixed.I(RasterSize / 2)
	// Middle baseline: the em box (ascent + descent) is centered on the raster.
	d.Dot = fixed.Point26_6{
		X: center - width/2,
		Y: center + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)

	return &Label{
		Text:  text,
		Image: img,
		Scale: [3]float32{size, size * 0.5, 1},
	}
}
