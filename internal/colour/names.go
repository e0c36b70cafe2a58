package colour

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Description contains a colour in every representation the tools report.
type Description struct {
	Hex       string `json:"hex"`        // "#rrggbb"
	RGB       RGB    `json:"rgb"`        // RGB components
	HSL       HSL    `json:"hsl"`        // HSL representation
	Name      string `json:"name"`       // Nearest SVG 1.1 colour keyword
	ExactName bool   `json:"exact_name"` // True when Name matches the colour exactly
}

// Info describes c in hex, RGB and HSL along with its nearest named colour.
func Info(c RGB) Description {
	name, exact := NearestName(c)
	return Description{
		Hex:       RGBToHex(c),
		RGB:       c,
		HSL:       RGBToHSL(c),
		Name:      name,
		ExactName: exact,
	}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// FromColor converts any color.Color to 8-bit RGB, discarding alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Distance returns the CIEDE2000 perceptual difference between a and b.
// Identical colours have distance 0; black to white is roughly 1.
func Distance(a, b RGB) float64 {
	return toColorful(a).DistanceCIEDE2000(toColorful(b))
}

// NearestName returns the SVG colour keyword closest to c. Ties resolve to
// the alphabetically first name. exact is true when the distance is zero.
func NearestName(c RGB) (name string, exact bool) {
	best := -1.0
	for _, n := range colornames.Names {
		nc := FromColor(colornames.Map[n])
		if nc == c {
			return n, true
		}
		d := Distance(c, nc)
		if best < 0 || d < best {
			best = d
			name = n
		}
	}
	return name, false
}
