package palette

import (
	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

// Generate derives the palette for base under scheme.
//
// The base string is returned verbatim in its slot; derived colours are
// canonical lowercase hex. If base cannot be parsed, or scheme is outside
// the enumeration, the result is the one-element slice []string{base}.
//
//	complementary  base, +180
//	analogous      base, +30, -30
//	triadic        base, +120, +240
//	tetradic       base, +90, +180, +270
//	monochromatic  lighten .30, lighten .15, base, darken .15, darken .30
func Generate(base string, scheme Scheme) []string {
	rgb, ok := colour.HexToRGB(base)
	if !ok {
		return []string{base}
	}

	rotated := func(degrees float64) string {
		return colour.RGBToHex(colour.RotateHue(rgb, degrees))
	}

	switch scheme {
	case Complementary:
		return []string{base, colour.RGBToHex(colour.Complementary(rgb))}
	case Analogous:
		return []string{base, rotated(30), rotated(-30)}
	case Triadic:
		return []string{base, rotated(120), rotated(240)}
	case Tetradic:
		return []string{base, rotated(90), rotated(180), rotated(270)}
	case Monochromatic:
		return []string{
			colour.Lighten(base, 0.3),
			colour.Lighten(base, 0.15),
			base,
			colour.Darken(base, 0.15),
			colour.Darken(base, 0.3),
		}
	default:
		return []string{base}
	}
}

// GenerateNamed is Generate for an untyped scheme name. Unknown names give
// the one-colour fallback palette.
func GenerateNamed(base, scheme string) []string {
	s, err := ParseScheme(scheme)
	if err != nil {
		return []string{base}
	}
	return Generate(base, s)
}
