package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
	"github.com/ironsheep/palette-tools-mcp/internal/render"
)

type paletteFlags struct {
	scheme string
	all    bool
	asJSON bool
	png    string
	size   int
}

func newPaletteCmd(root *rootFlags) *cobra.Command {
	flags := &paletteFlags{}

	cmd := &cobra.Command{
		Use:   "palette [hex]",
		Short: "Print the palette derived from a base colour",
		Example: `  palette-mcp palette '#3b82f6' --scheme triadic
  palette-mcp palette ef4444 --all
  palette-mcp palette ef4444 -s tetradic --png swatches.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			base := cfg.Palette.Base
			if len(args) == 1 {
				base = args[0]
			}
			scheme := cfg.Palette.Scheme
			if flags.scheme != "" {
				scheme = flags.scheme
			}

			names := []string{scheme}
			if flags.all {
				names = names[:0]
				for _, s := range palette.Schemes() {
					names = append(names, s.String())
				}
			}

			out := cmd.OutOrStdout()
			if flags.png != "" {
				if err := writeStrip(flags.png, palette.GenerateNamed(base, scheme), flags.size); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", flags.png)
			}

			if flags.asJSON {
				result := make(map[string][]string, len(names))
				for _, name := range names {
					result[name] = palette.GenerateNamed(base, name)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			for _, name := range names {
				title := fmt.Sprintf("%s  %s", name, base)
				if err := render.Fprint(out, title, palette.GenerateNamed(base, name)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.scheme, "scheme", "s", "", "Colour scheme (default from config)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Print every scheme")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print JSON instead of swatches")
	cmd.Flags().StringVar(&flags.png, "png", "", "Also write the palette as a PNG strip to this file")
	cmd.Flags().IntVar(&flags.size, "size", 48, "Swatch size in pixels for --png")
	cmd.MarkFlagsMutuallyExclusive("all", "png")

	return cmd
}

func writeStrip(path string, colors []string, size int) error {
	strip, err := imaging.DrawPaletteStrip(colors, size, true)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, strip); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
