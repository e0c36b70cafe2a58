package imaging

import (
	"errors"
	"math"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

// ErrNoSurface is reported when a pick is attempted before any image has
// been loaded.
var ErrNoSurface = errors.New("no image surface loaded")

// PickedColor is a colour sampled from a surface together with the buffer
// pixel it came from. Values are never modified after creation.
type PickedColor struct {
	Hex string     `json:"hex"`
	RGB colour.RGB `json:"rgb"`
	HSL colour.HSL `json:"hsl"`
	X   int        `json:"x"`
	Y   int        `json:"y"`
}

// ColorAtPosition returns the colour under a pointer at viewport position
// (clientX, clientY), where the surface is drawn into rect.
//
// The pointer is mapped into buffer space with
//
//	scaleX  = bufferWidth / rect.Width
//	bufferX = floor((clientX - rect.Left) * scaleX)
//
// and likewise for Y. The result is clamped into the buffer, so pointers
// just outside the drawn area read the nearest edge pixel. A rect with a
// non-positive width or height is taken to be drawn at buffer size.
//
// The boolean is false when s is nil (nothing loaded) or a coordinate is
// not a finite number; callers should ignore the pointer event.
func ColorAtPosition(s *Surface, rect DisplayRect, clientX, clientY float64) (PickedColor, bool) {
	if s == nil || s.pix == nil {
		return PickedColor{}, false
	}
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return PickedColor{}, false
	}

	x, ok := toBuffer(clientX, rect.Left, rect.Width, w)
	if !ok {
		return PickedColor{}, false
	}
	y, ok := toBuffer(clientY, rect.Top, rect.Height, h)
	if !ok {
		return PickedColor{}, false
	}

	c := straightRGBA(s.pix, x, y)
	rgb := colour.RGB{R: c.R, G: c.G, B: c.B}

	return PickedColor{
		Hex: colour.RGBToHex(rgb),
		RGB: rgb,
		HSL: colour.RGBToHSL(rgb),
		X:   x,
		Y:   y,
	}, true
}

// toBuffer maps one viewport coordinate onto a buffer axis of size n.
func toBuffer(client, origin, displayed float64, n int) (int, bool) {
	scale := 1.0
	if displayed > 0 && !math.IsInf(displayed, 0) {
		scale = float64(n) / displayed
	}
	v := math.Floor((client - origin) * scale)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	if v > float64(n-1) {
		return n - 1, true
	}
	return int(v), true
}
