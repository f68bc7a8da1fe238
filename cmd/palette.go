package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/comunas/internal/choropleth"
	"github.com/sells-group/comunas/internal/render"
)

var paletteCmd = &cobra.Command{
	Use:   "palette [PALETTE]",
	Short: "Show a choropleth palette",
	Long:  "Prints the six colors of a palette as terminal swatches; --out also draws them to an image.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := cfg.Palette.Default
		if len(args) == 1 {
			sel = args[0]
		}
		p, err := choropleth.ParsePalette(sel)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), render.Swatch(p))

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return nil
		}
		fig := cfg.Plot.Figure()
		fig.Height = fig.Width / 6
		pl, err := render.PalettePlot(p, fig)
		if err != nil {
			return err
		}
		_, err = render.Save(pl, fig, out)
		return err
	},
}

func init() {
	paletteCmd.Flags().String("out", "", "also draw the palette to this image file")
	rootCmd.AddCommand(paletteCmd)
}
