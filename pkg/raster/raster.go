// Package raster implements the synthetic satellite tile generator.
//
// A Raster is a fixed-size grid of RGB triples built in two passes: a
// seeded per-pixel Gaussian terrain base ([GenerateTerrain]) followed by
// rectangular field-plot overlays ([ApplyFieldPatterns]). Both passes share
// a single pseudo-random stream, so the full construction is byte-identical
// for a given coordinate and size.
//
// Rasters are mutable during construction and become immutable artifacts
// once handed to the evidence composer.
package raster

import (
	"image"
	"image/color"
)

// Channel indices within a pixel.
const (
	chR = 0
	chG = 1
	chB = 2
)

// Raster is a W×H grid of 8-bit RGB triples stored row-major with a
// stride of 3*W bytes.
type Raster struct {
	W, H int
	Pix  []uint8
}

// New allocates a zeroed raster of the given size.
func New(w, h int) *Raster {
	return &Raster{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// At returns the RGB triple at (x, y).
func (r *Raster) At(x, y int) (uint8, uint8, uint8) {
	i := (y*r.W + x) * 3
	return r.Pix[i+chR], r.Pix[i+chG], r.Pix[i+chB]
}

// Set writes the RGB triple at (x, y).
func (r *Raster) Set(x, y int, red, green, blue uint8) {
	i := (y*r.W + x) * 3
	r.Pix[i+chR] = red
	r.Pix[i+chG] = green
	r.Pix[i+chB] = blue
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	out := &Raster{W: r.W, H: r.H, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// Image copies the raster into an NRGBA image with full opacity.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			red, green, blue := r.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: red, G: green, B: blue, A: 255})
		}
	}
	return img
}

// FromImage converts any image into a raster, dropping alpha.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	out := New(b.Dx(), b.Dy())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			red, green, blue, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, uint8(red>>8), uint8(green>>8), uint8(blue>>8))
		}
	}
	return out
}

// clampAdd adds delta to v and clips the result to [lo, hi].
// Field-plot overlays apply this after every channel bias.
func clampAdd(v uint8, delta int, lo, hi int) uint8 {
	n := int(v) + delta
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return uint8(n)
}
