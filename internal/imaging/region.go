package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

// regionBounds resolves an optional region against img. A nil region means
// the whole image; otherwise the region is intersected with the bounds and
// must still cover at least one pixel.
func regionBounds(img image.Image, region *Region) (image.Rectangle, error) {
	bounds := img.Bounds()
	if region == nil {
		if bounds.Empty() {
			return bounds, fmt.Errorf("image has no pixels")
		}
		return bounds, nil
	}
	if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
		return image.Rectangle{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	r := image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds",
			region.X1, region.Y1, region.X2, region.Y2)
	}
	return r, nil
}

// AverageColorResult is the mean colour of a block of pixels.
type AverageColorResult struct {
	Color  ColorResult `json:"color"`
	Region Region      `json:"region"` // area actually averaged, after clipping
	Pixels int         `json:"pixels"`
}

// AverageColor returns the mean straight (non-premultiplied) colour of
// region, or of the whole image when region is nil. Alpha is averaged
// separately and does not weight the colour channels.
func AverageColor(img image.Image, region *Region) (*AverageColorResult, error) {
	r, err := regionBounds(img, region)
	if err != nil {
		return nil, err
	}

	var sumR, sumG, sumB, sumA float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := straightRGBA(img, x, y)
			sumR += float64(c.R)
			sumG += float64(c.G)
			sumB += float64(c.B)
			sumA += float64(c.A)
		}
	}

	n := float64(r.Dx() * r.Dy())
	rgb := colour.RGBFromFloats(sumR/n, sumG/n, sumB/n)
	return &AverageColorResult{
		Color: ColorResult{
			Hex:   colour.RGBToHex(rgb),
			RGB:   rgb,
			Alpha: uint8(math.Round(sumA / n)),
			HSL:   colour.RGBToHSL(rgb),
		},
		Region: Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		Pixels: r.Dx() * r.Dy(),
	}, nil
}

// CompareRegionsResult describes how far apart two regions are in colour.
type CompareRegionsResult struct {
	Region1         AverageColorResult `json:"region1"`
	Region2         AverageColorResult `json:"region2"`
	AverageDistance float64            `json:"average_distance"` // CIEDE2000 between the two averages
	SimilarityScore float64            `json:"similarity_score"` // share of compared pixels within tolerance
	PixelsDifferent int                `json:"pixels_different"`
	TotalPixels     int                `json:"total_pixels"`
	SameSize        bool               `json:"same_size"`
	Region1Size     Dimensions         `json:"region1_size"`
	Region2Size     Dimensions         `json:"region2_size"`
}

// CompareRegions compares two regions of img pixel by pixel, aligning them
// at their top-left corners over the overlap of their sizes. A pixel pair
// counts as different when its CIEDE2000 distance exceeds tolerance.
func CompareRegions(img image.Image, r1, r2 Region, tolerance float64) (*CompareRegionsResult, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must not be negative, got %g", tolerance)
	}
	b1, err := regionBounds(img, &r1)
	if err != nil {
		return nil, fmt.Errorf("region1: %w", err)
	}
	b2, err := regionBounds(img, &r2)
	if err != nil {
		return nil, fmt.Errorf("region2: %w", err)
	}

	avg1, _ := AverageColor(img, &r1)
	avg2, _ := AverageColor(img, &r2)

	minW := min(b1.Dx(), b2.Dx())
	minH := min(b1.Dy(), b2.Dy())
	totalPixels := minW * minH
	pixelsDifferent := 0

	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			a := straightRGB(img, b1.Min.X+dx, b1.Min.Y+dy)
			b := straightRGB(img, b2.Min.X+dx, b2.Min.Y+dy)
			if a != b && colour.Distance(a, b) > tolerance {
				pixelsDifferent++
			}
		}
	}

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)

	return &CompareRegionsResult{
		Region1:         *avg1,
		Region2:         *avg2,
		AverageDistance: math.Round(colour.Distance(avg1.Color.RGB, avg2.Color.RGB)*1000) / 1000,
		SimilarityScore: math.Round(similarity*1000) / 1000,
		PixelsDifferent: pixelsDifferent,
		TotalPixels:     totalPixels,
		SameSize:        b1.Dx() == b2.Dx() && b1.Dy() == b2.Dy(),
		Region1Size:     Dimensions{Width: b1.Dx(), Height: b1.Dy()},
		Region2Size:     Dimensions{Width: b2.Dx(), Height: b2.Dy()},
	}, nil
}

func straightRGB(img image.Image, x, y int) colour.RGB {
	c := straightRGBA(img, x, y)
	return colour.RGB{R: c.R, G: c.G, B: c.B}
}
