package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comunas/internal/shapefile"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Tabulate the comuna shapefile",
	Long: `Reads the shapefile into a feature table (one row per comuna, attribute
columns plus coords) and prints it, prints a single attribute column with
--column, or exports it to XLSX with --out.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("table"); err != nil {
			return err
		}
		tbl, err := loadTable(cfg)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out != "" {
			sheet, _ := cmd.Flags().GetString("sheet")
			geometry, _ := cmd.Flags().GetString("geometry")
			srid, _ := cmd.Flags().GetInt("srid")
			opts := shapefile.XLSXOptions{
				SheetName: sheet,
				Geometry:  shapefile.GeometryFormat(geometry),
				SRID:      srid,
			}
			if err := tbl.WriteXLSX(out, opts); err != nil {
				return err
			}
			zap.L().Info("exported feature table",
				zap.String("path", out),
				zap.String("geometry", geometry),
			)
			return nil
		}

		w := cmd.OutOrStdout()
		if col, _ := cmd.Flags().GetString("column"); col != "" {
			values, err := tbl.Column(col)
			if err != nil {
				return err
			}
			for i, v := range values {
				fmt.Fprintf(w, "%d\t%s\n", i, v)
			}
			return nil
		}

		fmt.Fprintf(w, "index\t%s\tvertices\n", strings.Join(tbl.Fields(), "\t"))
		for i := 0; i < tbl.Len(); i++ {
			fmt.Fprintf(w, "%d\t%s\t%d\n", i, strings.Join(tbl.Row(i), "\t"), len(tbl.Coords(i)))
		}
		return nil
	},
}

func init() {
	tableCmd.Flags().String("out", "", "write the table to this .xlsx file")
	tableCmd.Flags().String("sheet", "", "sheet name for --out")
	tableCmd.Flags().String("geometry", "wkt", "coords encoding for --out: wkt or wkb (hex EWKB)")
	tableCmd.Flags().Int("srid", 0, "SRID tagged on wkb geometries")
	tableCmd.Flags().String("column", "", "print only this attribute column")
	rootCmd.AddCommand(tableCmd)
}
