// Package colour implements the colour-space arithmetic used by the palette
// tools: hex, RGB and HSL conversion, hue rotation and lightness shifts.
//
// # Representations
//
//   - Hex: "#rrggbb", lowercase and zero-padded on output. Parsing accepts
//     an optional leading '#' and either letter case.
//   - RGB: 8-bit components (0-255).
//   - HSL: Hue in [0,360) degrees, Saturation and Lightness in [0,100].
//     Components are kept as float64 so that conversions round-trip
//     without drift; round only for display.
//
// # Error Handling
//
// Every operation fails soft. A malformed hex string is reported through a
// boolean (HexToRGB) or ErrInvalidFormat (ParseHex), and Lighten/Darken
// return their input unchanged rather than failing. No function panics on
// bad input.
//
// All functions are pure and safe for concurrent use.
package colour
