package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned by ParseScheme for names outside the
// enumeration.
var ErrUnknownScheme = errors.New("unknown colour scheme")

// Scheme selects how a palette is derived from its base colour.
type Scheme int

// Supported schemes, in display order.
const (
	Complementary Scheme = iota
	Analogous
	Triadic
	Tetradic
	Monochromatic
)

var schemeNames = [...]string{
	Complementary: "complementary",
	Analogous:     "analogous",
	Triadic:       "triadic",
	Tetradic:      "tetradic",
	Monochromatic: "monochromatic",
}

var schemeDescriptions = [...]string{
	Complementary: "Complementary colors are opposite each other on the color wheel. They create high contrast and vibrant combinations perfect for highlighting important elements.",
	Analogous:     "Analogous colors are next to each other on the color wheel. They create harmonious and pleasing combinations, great for creating a cohesive design.",
	Triadic:       "Triadic colors are evenly spaced around the color wheel, forming a triangle. They provide balanced contrast while maintaining harmony.",
	Tetradic:      "Tetradic colors form a rectangle on the color wheel. This scheme offers rich color variety and works well for complex designs.",
	Monochromatic: "Monochromatic colors are variations of a single hue with different lightness. They create elegant, cohesive color schemes.",
}

// Schemes returns every scheme in display order.
func Schemes() []Scheme {
	return []Scheme{Complementary, Analogous, Triadic, Tetradic, Monochromatic}
}

// Valid reports whether s is one of the declared schemes.
func (s Scheme) Valid() bool {
	return s >= Complementary && s <= Monochromatic
}

// String returns the lowercase scheme name, or "scheme(N)" for values
// outside the enumeration.
func (s Scheme) String() string {
	if !s.Valid() {
		return fmt.Sprintf("scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Size is the number of colours Generate returns for s, or 1 for values
// outside the enumeration.
func (s Scheme) Size() int {
	switch s {
	case Complementary:
		return 2
	case Analogous, Triadic:
		return 3
	case Tetradic:
		return 4
	case Monochromatic:
		return 5
	default:
		return 1
	}
}

// Description explains the scheme in one or two sentences.
func Description(s Scheme) string {
	if !s.Valid() {
		return ""
	}
	return schemeDescriptions[s]
}

// ParseScheme resolves a scheme name. Matching ignores case and
// surrounding whitespace.
func ParseScheme(name string) (Scheme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range schemeNames {
		if sn == n {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
