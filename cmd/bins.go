package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/comunas/internal/choropleth"
)

var binsCmd = &cobra.Command{
	Use:   "bins VALUE...",
	Short: "Cut values into six quantile bins and print their colors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("bins"); err != nil {
			return err
		}
		palette, err := paletteFlag(cmd)
		if err != nil {
			return err
		}

		data := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return eris.Wrapf(err, "value %d", i)
			}
			data[i] = v
		}

		res, err := choropleth.BinColors(data, palette)
		if err != nil {
			return err
		}
		printBins(cmd, data, res)
		return nil
	},
}

// paletteFlag reads --palette, falling back to palette.default.
func paletteFlag(cmd *cobra.Command) (choropleth.Palette, error) {
	sel, _ := cmd.Flags().GetString("palette")
	if sel == "" {
		sel = cfg.Palette.Default
	}
	return choropleth.ParsePalette(sel)
}

func printBins(cmd *cobra.Command, data []float64, res choropleth.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "palette\t%s\n", res.Palette)
	for k, label := range res.Labels() {
		fmt.Fprintf(w, "bin %d\t%s\t%s\n", k, label, res.Palette.Colors()[k])
	}
	for i, v := range data {
		fmt.Fprintf(w, "%g\t%d\t%s\n", v, res.Bins[i], res.Colors[i])
	}
}

func init() {
	binsCmd.Flags().StringP("palette", "p", "", "palette: 1, 2, 3, 9, default or a scheme name")
	rootCmd.AddCommand(binsCmd)
}
