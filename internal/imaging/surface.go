package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Dimensions is the pixel size of a raster buffer.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayRect is the on-screen box a surface is drawn into, in viewport
// units. Width and Height may differ from the buffer dimensions when the
// surface is scaled for display.
type DisplayRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Surface is a decoded raster buffer that colours are picked from.
//
// The pixels are copied into an *image.RGBA whose origin is (0,0), so buffer
// coordinates always start at zero regardless of the source image's bounds.
type Surface struct {
	pix *image.RGBA
}

// NewSurface copies img into a new Surface.
func NewSurface(img image.Image) *Surface {
	pix := clone.AsRGBA(img)
	// Shift the rectangle so buffer coordinates start at (0,0); the Pix
	// layout is relative to Rect.Min and stays valid.
	pix.Rect = pix.Rect.Sub(pix.Rect.Min)
	return &Surface{pix: pix}
}

// Width returns the buffer width in pixels.
func (s *Surface) Width() int { return s.pix.Bounds().Dx() }

// Height returns the buffer height in pixels.
func (s *Surface) Height() int { return s.pix.Bounds().Dy() }

// Dimensions returns the buffer size.
func (s *Surface) Dimensions() Dimensions {
	return Dimensions{Width: s.Width(), Height: s.Height()}
}

// Image exposes the underlying buffer for read-only use.
func (s *Surface) Image() image.Image { return s.pix }

// FitToDisplay scales img down, preserving aspect ratio, so that it fits in
// maxWidth x maxHeight. Images that already fit are returned as they are;
// nothing is ever scaled up. A non-positive limit leaves that axis
// unconstrained.
func FitToDisplay(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxWidth <= 0 {
		maxWidth = w
	}
	if maxHeight <= 0 {
		maxHeight = h
	}
	if w <= maxWidth && h <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
