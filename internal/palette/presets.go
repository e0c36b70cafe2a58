package palette

import (
	"math/rand"
	"strings"
)

// Preset is a named, ready-made palette.
type Preset struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
	Scheme Scheme   `json:"scheme"`
}

var presets = []Preset{
	{Name: "Ocean Breeze", Colors: []string{"#0ea5e9", "#06b6d4", "#14b8a6"}, Scheme: Analogous},
	{Name: "Sunset", Colors: []string{"#f97316", "#ef4444", "#dc2626"}, Scheme: Analogous},
	{Name: "Forest", Colors: []string{"#10b981", "#059669", "#047857"}, Scheme: Monochromatic},
	{Name: "Royal Purple", Colors: []string{"#8b5cf6", "#a855f7", "#c084fc"}, Scheme: Monochromatic},
	{Name: "Vibrant Triad", Colors: []string{"#3b82f6", "#10b981", "#f59e0b"}, Scheme: Triadic},
	{Name: "Pink & Blue", Colors: []string{"#ec4899", "#3b82f6"}, Scheme: Complementary},
}

// suggestedBases are the candidates RandomBase draws from.
var suggestedBases = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#06b6d4", "#84cc16", "#f97316", "#6366f1",
}

// Presets returns a copy of the built-in palettes.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Colors = append([]string(nil), p.Colors...)
		out[i] = p
	}
	return out
}

// PresetByName looks a preset up by name, ignoring case.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// SuggestedBases returns the base colours RandomBase can pick.
func SuggestedBases() []string {
	return append([]string(nil), suggestedBases...)
}

// RandomBase picks one of the suggested base colours using r.
func RandomBase(r *rand.Rand) string {
	return suggestedBases[r.Intn(len(suggestedBases))]
}
