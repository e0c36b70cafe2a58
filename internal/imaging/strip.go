package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

const (
	glyphAdvance = 4
	glyphHeight  = 5
)

// PaletteImageResult is a rendered palette strip.
type PaletteImageResult struct {
	Colors      []string `json:"colors"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	ImageBase64 string   `json:"image_base64"`
	MimeType    string   `json:"mime_type"`
}

// PaletteStrip renders colors with DrawPaletteStrip and returns the strip
// as a base64 PNG together with the canonical hex of each swatch.
func PaletteStrip(colors []string, swatchSize int, labels bool) (*PaletteImageResult, error) {
	strip, err := DrawPaletteStrip(colors, swatchSize, labels)
	if err != nil {
		return nil, err
	}
	encoded, err := encodePNG(strip)
	if err != nil {
		return nil, err
	}

	hexes := make([]string, len(colors))
	for i, hex := range colors {
		rgb, _ := colour.HexToRGB(hex)
		hexes[i] = colour.RGBToHex(rgb)
	}
	return &PaletteImageResult{
		Colors:      hexes,
		Width:       strip.Bounds().Dx(),
		Height:      strip.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// DrawPaletteStrip draws colors left to right as square swatches of side
// swatchSize. With labels set, each swatch carries its hex value in black
// or white, whichever contrasts better; labels are left out of swatches
// too small to hold them.
func DrawPaletteStrip(colors []string, swatchSize int, labels bool) (*image.RGBA, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("no colours to render")
	}
	if swatchSize < 1 {
		return nil, fmt.Errorf("swatch size must be positive, got %d", swatchSize)
	}

	rgbs := make([]colour.RGB, len(colors))
	for i, hex := range colors {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		rgbs[i] = rgb
	}

	strip := image.NewRGBA(image.Rect(0, 0, swatchSize*len(rgbs), swatchSize))
	for i, rgb := range rgbs {
		fill := color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
		cell := image.Rect(i*swatchSize, 0, (i+1)*swatchSize, swatchSize)
		draw.Draw(strip, cell, &image.Uniform{C: fill}, image.Point{}, draw.Src)

		label := colour.RGBToHex(rgb)
		if labels && labelFits(label, swatchSize) {
			fg := color.RGBA{A: 255}
			if colour.Luma(rgb) <= 0.6 {
				fg = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			drawLabel(strip, cell.Min.X+2, swatchSize-glyphHeight-3, label, fg, fill)
		}
	}
	return strip, nil
}

func labelFits(text string, swatchSize int) bool {
	return len(text)*glyphAdvance+3 <= swatchSize && glyphHeight+4 <= swatchSize
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// 3x5 glyphs for hex colour labels.
var glyphs = map[rune][glyphHeight]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'a': {"010", "101", "111", "101", "101"},
	'b': {"110", "101", "110", "101", "110"},
	'c': {"111", "100", "100", "100", "111"},
	'd': {"110", "101", "101", "101", "110"},
	'e': {"111", "100", "111", "100", "111"},
	'f': {"111", "100", "111", "100", "100"},
	'#': {"101", "111", "101", "111", "101"},
}

// drawLabel draws text at (x, y) on a one-pixel-padded background box.
// Pixels falling outside img are skipped.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	set := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	labelWidth := len(text) * glyphAdvance
	for dy := -1; dy < glyphHeight+1; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel == '1' {
						set(cx+col, y+row, fg)
					}
				}
			}
		}
		cx += glyphAdvance
	}
}
