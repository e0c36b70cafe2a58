package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex   string     `json:"hex"`   // Hex format "#rrggbb" (no alpha)
	RGB   colour.RGB `json:"rgb"`   // RGB components
	Alpha uint8      `json:"alpha"` // Alpha/opacity (0-255)
	HSL   colour.HSL `json:"hsl"`   // HSL representation
}

// straightRGBA reads the pixel at (x, y) as non-premultiplied 8-bit RGBA,
// the way a canvas reports pixel data.
func straightRGBA(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0 = leftmost pixel of img.Bounds()).
//   - y: Y coordinate (0 = topmost pixel of img.Bounds()).
//
// Unlike ColorAtPosition, coordinates are not clamped: a point outside the
// image bounds is an error.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := straightRGBA(img, bounds.Min.X+x, bounds.Min.Y+y)
	rgb := colour.RGB{R: c.R, G: c.G, B: c.B}

	return &ColorResult{
		Hex:   colour.RGBToHex(rgb),
		RGB:   rgb,
		Alpha: c.A,
		HSL:   colour.RGBToHSL(rgb),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// If any coordinate is outside the image bounds the whole call fails and no
// partial results are returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// Region represents a rectangular region within an image.
//
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string     `json:"hex"`        // Hex color "#rrggbb" (quantized)
	Percentage float64    `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        colour.RGB `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image.
//
// Colors are sorted by frequency in descending order (most common first).
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the N most common colors from an image or region.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors to return.
//   - region: Optional rectangular region to analyze. If nil, the entire image
//     is analyzed. The region is intersected with the image bounds.
//   - mergeDistance: Buckets whose CIEDE2000 distance to a more frequent
//     bucket is below this value are folded into it. Zero disables merging.
//
// # Color Quantization
//
// To group similar colors, each RGB component is quantized to a multiple of
// 16 before counting:
//
//	quantized = (original / 16) * 16
//
// For example, colors #f0f0f0 and #fafafa would both be counted as #f0f0f0.
func DominantColors(img image.Image, count int, region *Region, mergeDistance float64) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	bounds, err := regionBounds(img, region)
	if err != nil {
		return nil, err
	}

	colorCounts := make(map[colour.RGB]int)
	totalPixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := straightRGBA(img, x, y)
			key := colour.RGB{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}
			colorCounts[key]++
			totalPixels++
		}
	}

	type bucket struct {
		rgb   colour.RGB
		count int
	}
	buckets := make([]bucket, 0, len(colorCounts))
	for rgb, cnt := range colorCounts {
		buckets = append(buckets, bucket{rgb: rgb, count: cnt})
	}
	// Ties break on hex so results do not depend on map order.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return colour.RGBToHex(buckets[i].rgb) < colour.RGBToHex(buckets[j].rgb)
	})

	if mergeDistance > 0 {
		// Only the most frequent candidates can absorb others; this bounds
		// the distance computations on photos with thousands of buckets.
		limit := count * 4
		merged := make([]bucket, 0, limit)
	next:
		for _, b := range buckets {
			for i := range merged {
				if colour.Distance(merged[i].rgb, b.rgb) < mergeDistance {
					merged[i].count += b.count
					continue next
				}
			}
			if len(merged) < limit {
				merged = append(merged, b)
			}
		}
		buckets = merged
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].count > buckets[j].count
		})
	}

	if len(buckets) > count {
		buckets = buckets[:count]
	}

	colors := make([]ColorFrequency, len(buckets))
	for i, b := range buckets {
		colors[i] = ColorFrequency{
			Hex:        colour.RGBToHex(b.rgb),
			Percentage: float64(b.count) / float64(totalPixels) * 100,
			RGB:        b.rgb,
		}
	}

	return &DominantColorsResult{Colors: colors}, nil
}
