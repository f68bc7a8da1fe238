package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comunas/internal/dataset"
	"github.com/sells-group/comunas/internal/render"
)

var plotShapeCmd = &cobra.Command{
	Use:   "shape ID|NAME",
	Short: "Draw a single comuna",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("plot"); err != nil {
			return err
		}
		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}
		r, err := newResolver(cfg, tbl)
		if err != nil {
			return err
		}
		ids, err := resolveTargets(tbl, r, args)
		if err != nil {
			return err
		}
		fig, err := figureFromFlags(cmd)
		if err != nil {
			return err
		}

		label := args[0]
		if name, err := tbl.Value(ids[0], r.NameColumn); err == nil {
			label = name
		}
		p, err := render.Shape(tbl, ids[0], label, fig)
		if err != nil {
			return err
		}
		if fig.Title == "" {
			fig.Title = label
		}
		return savePlot(cmd, p, fig)
	},
}

var plotMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw every comuna outline, numbered",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("plot"); err != nil {
			return err
		}
		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}
		fig, err := figureFromFlags(cmd)
		if err != nil {
			return err
		}

		opts := render.MapOptions{}
		opts.Start, _ = cmd.Flags().GetInt("start")
		if hl, _ := cmd.Flags().GetString("highlight"); hl != "" {
			r, err := newResolver(cfg, tbl)
			if err != nil {
				return err
			}
			if opts.Highlight, err = resolveTargets(tbl, r, splitAndTrim(hl)); err != nil {
				return err
			}
		}

		p, err := render.Map(tbl, opts, fig)
		if err != nil {
			return err
		}
		return savePlot(cmd, p, fig)
	},
}

var plotHighlightCmd = &cobra.Command{
	Use:   "highlight ID|NAME...",
	Short: "Fill selected comunas and optionally thicken other borders",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("plot"); err != nil {
			return err
		}
		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}
		r, err := newResolver(cfg, tbl)
		if err != nil {
			return err
		}
		fig, err := figureFromFlags(cmd)
		if err != nil {
			return err
		}

		fill, err := resolveTargets(tbl, r, args)
		if err != nil {
			return err
		}
		var borders []int
		if b, _ := cmd.Flags().GetString("borders"); b != "" {
			if borders, err = resolveTargets(tbl, r, splitAndTrim(b)); err != nil {
				return err
			}
		}

		fillColor, _ := cmd.Flags().GetString("fill-color")
		borderColor, _ := cmd.Flags().GetString("border-color")
		annotate, _ := cmd.Flags().GetBool("annotate")

		p, err := render.Highlight(tbl, render.HighlightOptions{
			Fill:        fill,
			FillColor:   orDefault(fillColor, cfg.Plot.FillColor),
			Borders:     borders,
			BorderColor: orDefault(borderColor, cfg.Plot.BorderColor),
			Annotate:    annotate,
		}, fig)
		if err != nil {
			return err
		}
		return savePlot(cmd, p, fig)
	},
}

var plotDataCmd = &cobra.Command{
	Use:   "data",
	Short: "Draw a choropleth of a per-comuna data series",
	Long: `Loads comuna names and values from a CSV or XLSX file, cuts the values
into six quantile bins and fills each comuna with its bin color.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("plot"); err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("data")
		if path == "" {
			return eris.New("--data is required")
		}
		palette, err := paletteFlag(cmd)
		if err != nil {
			return err
		}

		nameCol, _ := cmd.Flags().GetString("name-col")
		valueCol, _ := cmd.Flags().GetString("value-col")
		sheet, _ := cmd.Flags().GetString("sheet")
		series, err := dataset.Load(path, dataset.Options{NameColumn: nameCol, ValueColumn: valueCol, SheetName: sheet})
		if err != nil {
			return err
		}

		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}
		r, err := newResolver(cfg, tbl)
		if err != nil {
			return err
		}
		fig, err := figureFromFlags(cmd)
		if err != nil {
			return err
		}
		showIDs, _ := cmd.Flags().GetBool("ids")

		p, res, err := render.ComunasData(tbl, r, series.Names, series.Values, palette, showIDs, fig)
		if err != nil {
			return err
		}
		zap.L().Info("binned data series",
			zap.Int("comunas", len(series.Names)),
			zap.Stringer("palette", res.Palette),
			zap.Float64s("edges", res.Edges),
		)
		return savePlot(cmd, p, fig)
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	plotMapCmd.Flags().Int("start", 0, "number printed on the first comuna")
	plotMapCmd.Flags().String("highlight", "", "comma-separated ids or names drawn in red")

	plotHighlightCmd.Flags().String("borders", "", "comma-separated ids or names drawn with a thick border")
	plotHighlightCmd.Flags().String("fill-color", "", "fill color (default plot.fill_color)")
	plotHighlightCmd.Flags().String("border-color", "", "border color (default plot.border_color)")
	plotHighlightCmd.Flags().Bool("annotate", true, "print the id of each filled comuna")

	plotDataCmd.Flags().String("data", "", "CSV or XLSX file with comuna names and values")
	plotDataCmd.Flags().String("name-col", "comuna", "column holding comuna names")
	plotDataCmd.Flags().String("value-col", "value", "column holding values")
	plotDataCmd.Flags().String("sheet", "", "XLSX sheet name (first sheet when empty)")
	plotDataCmd.Flags().StringP("palette", "p", "", "palette: 1, 2, 3, 9, default or a scheme name")
	plotDataCmd.Flags().Bool("ids", false, "print the feature id on each comuna")

	plotCmd.AddCommand(plotShapeCmd, plotMapCmd, plotHighlightCmd, plotDataCmd)
}
