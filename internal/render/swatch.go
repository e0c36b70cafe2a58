// Package render draws palettes as coloured terminal swatches.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
)

const swatchWidth = 11

// ContrastText returns black or white, whichever reads better on bg.
func ContrastText(bg colour.RGB) string {
	if colour.Luma(bg) > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Swatches renders one block per colour, side by side, each labelled with
// its hex value. Entries that are not valid hex are shown as plain labels.
// Colour output follows the capabilities of w.
func Swatches(w io.Writer, colors []string) string {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().
		Width(swatchWidth).
		Align(lipgloss.Center).
		Padding(1, 0)

	blocks := make([]string, 0, len(colors))
	for _, hex := range colors {
		style := base
		if rgb, ok := colour.HexToRGB(hex); ok {
			style = style.
				Background(lipgloss.Color(colour.RGBToHex(rgb))).
				Foreground(lipgloss.Color(ContrastText(rgb)))
		}
		blocks = append(blocks, style.Render(hex))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// Fprint writes a titled palette to w.
func Fprint(w io.Writer, title string, colors []string) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(heading.Render(title))
	b.WriteString("\n")
	b.WriteString(Swatches(w, colors))
	b.WriteString("\n")

	_, err := fmt.Fprint(w, b.String())
	return err
}
