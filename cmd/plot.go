package main

import (
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/sells-group/comunas/internal/render"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw comuna maps",
	Long: `Draws maps of the comuna shapefile and saves them as images. The output
file defaults to the title plus the configured format, in plot.out_dir.`,
}

// figureFromFlags builds the figure from configuration and the plot flags.
func figureFromFlags(cmd *cobra.Command) (render.Figure, error) {
	fig := cfg.Plot.Figure()
	fig.Title, _ = cmd.Flags().GetString("title")

	xlim, _ := cmd.Flags().GetString("xlim")
	ylim, _ := cmd.Flags().GetString("ylim")
	if (xlim == "") != (ylim == "") {
		return fig, eris.New("--xlim and --ylim must be given together")
	}
	if xlim != "" {
		x, err := parseRange(xlim)
		if err != nil {
			return fig, eris.Wrap(err, "--xlim")
		}
		y, err := parseRange(ylim)
		if err != nil {
			return fig, eris.Wrap(err, "--ylim")
		}
		fig.XLim, fig.YLim = &x, &y
	}
	return fig, nil
}

func parseRange(s string) (render.Range, error) {
	parts := splitAndTrim(s)
	if len(parts) != 2 {
		return render.Range{}, eris.Errorf("range %q must be MIN,MAX", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return render.Range{}, eris.Wrapf(err, "range min %q", parts[0])
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return render.Range{}, eris.Wrapf(err, "range max %q", parts[1])
	}
	if hi <= lo {
		return render.Range{}, eris.Errorf("range %q: max must exceed min", s)
	}
	return render.Range{Min: lo, Max: hi}, nil
}

// savePlot writes p to --out, or to plot.out_dir named after the title
// (the subcommand name when untitled).
func savePlot(cmd *cobra.Command, p *plot.Plot, fig render.Figure) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		if fig.Title == "" {
			fig.Title = cmd.Name()
		}
		name, err := render.OutputPath(fig, "")
		if err != nil {
			return err
		}
		out = filepath.Join(cfg.Plot.OutDir, name)
	}
	_, err := render.Save(p, fig, out)
	return err
}

func init() {
	plotCmd.PersistentFlags().String("title", "", "figure title (also the default file name)")
	plotCmd.PersistentFlags().String("out", "", "output image path")
	plotCmd.PersistentFlags().String("xlim", "", "visible x range as MIN,MAX (needs --ylim)")
	plotCmd.PersistentFlags().String("ylim", "", "visible y range as MIN,MAX (needs --xlim)")
	rootCmd.AddCommand(plotCmd)
}
