package colour

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidFormat is returned by ParseHex when the input is not a 6-digit
// hex colour.
var ErrInvalidFormat = errors.New("invalid hex colour format")

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// RGB represents an RGB color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// Values are not rounded: H is in [0,360), S and L are percentages in
// [0,100].
type HSL struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L float64 `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HexToRGB parses a 6-digit hex colour with an optional leading '#'.
//
// The boolean is false when the string does not match the pattern; callers
// should treat that as "no colour" and skip further processing.
func HexToRGB(hex string) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}
	var c [3]uint8
	for i := range c {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		c[i] = uint8(v)
	}
	return RGB{R: c[0], G: c[1], B: c[2]}, true
}

// ParseHex is HexToRGB for callers that prefer an error value.
func ParseHex(hex string) (RGB, error) {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	return rgb, nil
}

// IsHex reports whether s is a parseable hex colour.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// RGBToHex formats c as "#rrggbb".
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBFromFloats builds an RGB from unrounded channel values, rounding to the
// nearest integer and clamping into [0,255].
func RGBFromFloats(r, g, b float64) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// RGBToHSL converts c to HSL.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Calculate Lightness as (max + min) / 2
//  4. Calculate Saturation based on lightness
//  5. Calculate Hue based on which component is max
//
// Gray inputs (max == min) have hue and saturation 0.
func RGBToHSL(c RGB) HSL {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))

	l := (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2.0
	case bf:
		h = (rf-gf)/d + 4.0
	}
	h /= 6

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// HSLToRGB converts c back to RGB, rounding each channel. Any hue is
// accepted and wrapped onto the wheel.
func HSLToRGB(c HSL) RGB {
	h := NormalizeHue(c.H) / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		return RGBFromFloats(l*255, l*255, l*255)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGBFromFloats(
		hueToRGB(p, q, h+1.0/3.0)*255,
		hueToRGB(p, q, h)*255,
		hueToRGB(p, q, h-1.0/3.0)*255,
	)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// NormalizeHue wraps h into [0,360). Negative inputs wrap from the top.
func NormalizeHue(h float64) float64 {
	return math.Mod(math.Mod(h, 360)+360, 360)
}

// RotateHue turns c around the colour wheel by degrees (negative values
// rotate backwards). degrees is wrapped before it is added, so angles a
// whole turn apart give the same colour.
func RotateHue(c RGB, degrees float64) RGB {
	hsl := RGBToHSL(c)
	hsl.H = NormalizeHue(hsl.H + NormalizeHue(degrees))
	return HSLToRGB(hsl)
}

// Complementary returns the colour opposite c on the wheel.
func Complementary(c RGB) RGB {
	return RotateHue(c, 180)
}

// Lighten adds amount*100 to the lightness of hex, capped at 100.
// amount is a delta in [0,1], not a multiplier. An unparseable hex is
// returned unchanged.
func Lighten(hex string, amount float64) string {
	return shiftLightness(hex, amount*100)
}

// Darken subtracts amount*100 from the lightness of hex, floored at 0.
// An unparseable hex is returned unchanged.
func Darken(hex string, amount float64) string {
	return shiftLightness(hex, -amount*100)
}

func shiftLightness(hex string, delta float64) string {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	hsl := RGBToHSL(rgb)
	hsl.L = math.Max(0, math.Min(100, hsl.L+delta))
	return RGBToHex(HSLToRGB(hsl))
}

// Luma returns the Rec. 601 luma of c in [0,1].
func Luma(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
