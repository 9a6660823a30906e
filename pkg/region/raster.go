package region

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Raster is an occupancy bitmap of a region over a box.
type Raster struct {
	Box   Box
	Pixel float64
	Image *image.Alpha
}

// Rasterize draws the region into a bitmap covering b with square pixels
// of the given size in database units. Holes are cut out because they
// are wound opposite to their outer rings.
func (r Region) Rasterize(b Box, pixel float64) Raster {
	w := int(math.Ceil(b.Width() / pixel))
	h := int(math.Ceil(b.Height() / pixel))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	raster := Raster{Box: b, Pixel: pixel, Image: dst}
	if r.IsEmpty() {
		return raster
	}

	z := vector.NewRasterizer(w, h)
	for _, ring := range r.Rings() {
		for i, p := range ring {
			x, y := raster.toPixel(p)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return raster
}

func (r Raster) toPixel(p Point) (float32, float32) {
	return float32((p.X - r.Box.Min.X) / r.Pixel), float32((r.Box.Max.Y - p.Y) / r.Pixel)
}

// Covered reports whether the pixel center at (i, j) is at least half
// covered.
func (r Raster) Covered(i, j int) bool {
	return r.Image.AlphaAt(i, j).A >= 0x80
}

// Center returns center of pixel (i, j) in database units.
func (r Raster) Center(i, j int) Point {
	return Point{
		X: r.Box.Min.X + (float64(i)+0.5)*r.Pixel,
		Y: r.Box.Max.Y - (float64(j)+0.5)*r.Pixel,
	}
}

// CoveredCount returns number of covered pixels.
func (r Raster) CoveredCount() int {
	n := 0
	b := r.Image.Bounds()
	for j := b.Min.Y; j < b.Max.Y; j++ {
		for i := b.Min.X; i < b.Max.X; i++ {
			if r.Covered(i, j) {
				n++
			}
		}
	}
	return n
}
