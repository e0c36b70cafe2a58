// Package imaging loads images and reads colours out of them for the
// palette tools.
//
// It covers four jobs:
//   - decoding image files into a cache (ImageCache, LoadImageInfo)
//   - turning a decoded image into a raster Surface scaled to fit a display
//     area, the buffer a colour picker reads from
//   - sampling colours: a single pixel by buffer coordinate (SampleColor), a
//     pixel under a pointer in display coordinates (ColorAtPosition), and the
//     dominant colours of an image or region (DominantColors)
//   - rendering: a magnified loupe around the pointer (Magnify), region
//     averages and comparisons (AverageColor, CompareRegions) and palette
//     strips (PaletteStrip)
//
// # Coordinate System
//
// Buffer coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Display coordinates are
// the pointer's viewport position; a DisplayRect describes where, and at
// what size, the surface is drawn on screen. The two may differ when the
// surface is scaled by layout.
//
// # Color Representation
//
// Colors are reported as lowercase "#rrggbb" hex, 8-bit RGB and unrounded
// HSL (see package colour). Pixels are read non-premultiplied; alpha is
// reported by SampleColor and AverageColor and otherwise discarded.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Surfaces are read-only after
// construction; sampling functions are stateless.
package imaging
