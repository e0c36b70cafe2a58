package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
	"github.com/ironsheep/palette-tools-mcp/internal/render"
)

type pickFlags struct {
	x, y   float64
	fit    bool
	asJSON bool
}

type pickOutput struct {
	Picked  imaging.PickedColor `json:"picked"`
	Info    colour.Description  `json:"info"`
	Surface imaging.Dimensions  `json:"surface"`
	Palette []string            `json:"palette"`
}

func newPickCmd(root *rootFlags) *cobra.Command {
	flags := &pickFlags{}

	cmd := &cobra.Command{
		Use:   "pick <image>",
		Short: "Print the colour at a position in an image",
		Long: "Print the colour at (x, y), given in the image's own pixels.\n" +
			"With --fit the image is first scaled to the configured display bounds,\n" +
			"and the position is mapped onto the scaled buffer.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			img, err := imaging.NewImageCache().Load(args[0])
			if err != nil {
				return err
			}
			b := img.Bounds()
			if flags.fit {
				img = imaging.FitToDisplay(img, cfg.Display.MaxWidth, cfg.Display.MaxHeight)
			}

			surface := imaging.NewSurface(img)
			rect := imaging.DisplayRect{Width: float64(b.Dx()), Height: float64(b.Dy())}
			picked, ok := imaging.ColorAtPosition(surface, rect, flags.x, flags.y)
			if !ok {
				return fmt.Errorf("no colour at (%g, %g)", flags.x, flags.y)
			}
			log.WithFields(map[string]any{"x": picked.X, "y": picked.Y, "hex": picked.Hex}).Debug("picked")

			res := pickOutput{
				Picked:  picked,
				Info:    colour.Info(picked.RGB),
				Surface: surface.Dimensions(),
				Palette: palette.Generate(picked.Hex, cfg.SchemeValue()),
			}

			out := cmd.OutOrStdout()
			if flags.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(out, "%s  rgb(%d, %d, %d)  hsl(%.0f, %.0f%%, %.0f%%)  ~%s  at (%d, %d)\n",
				picked.Hex, picked.RGB.R, picked.RGB.G, picked.RGB.B,
				picked.HSL.H, picked.HSL.S, picked.HSL.L, res.Info.Name, picked.X, picked.Y)
			return render.Fprint(out, cfg.Palette.Scheme, res.Palette)
		},
	}

	cmd.Flags().Float64Var(&flags.x, "x", 0, "X position in image pixels")
	cmd.Flags().Float64Var(&flags.y, "y", 0, "Y position in image pixels")
	cmd.Flags().BoolVar(&flags.fit, "fit", false, "Scale the image to the display bounds before picking")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print JSON")

	return cmd
}
