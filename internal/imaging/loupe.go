package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoupeResult is an enlarged view of the pixels around a pointer together
// with the colour directly under it.
type LoupeResult struct {
	Center      PickedColor `json:"center"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	ImageBase64 string      `json:"image_base64"`
	MimeType    string      `json:"mime_type"`
}

// Magnify returns the square of side 2*radius+1 buffer pixels centred on
// the pixel under the pointer, scaled up by zoom. Each source pixel becomes
// a zoom x zoom block. Near the buffer edge the square is cut short rather
// than padded.
//
// The pointer is mapped exactly as in ColorAtPosition.
func Magnify(s *Surface, rect DisplayRect, clientX, clientY float64, radius, zoom int) (*LoupeResult, error) {
	if s == nil || s.pix == nil {
		return nil, ErrNoSurface
	}
	if radius < 0 {
		return nil, fmt.Errorf("radius must not be negative, got %d", radius)
	}
	if zoom < 1 {
		return nil, fmt.Errorf("zoom must be at least 1, got %d", zoom)
	}

	center, ok := ColorAtPosition(s, rect, clientX, clientY)
	if !ok {
		return nil, fmt.Errorf("no pixel at (%g, %g)", clientX, clientY)
	}

	area := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).
		Intersect(s.pix.Bounds())
	view := imaging.Crop(s.pix, area)
	if zoom > 1 {
		view = imaging.Resize(view, area.Dx()*zoom, area.Dy()*zoom, imaging.NearestNeighbor)
	}

	encoded, err := encodePNG(view)
	if err != nil {
		return nil, err
	}

	return &LoupeResult{
		Center:      center,
		Width:       view.Bounds().Dx(),
		Height:      view.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
