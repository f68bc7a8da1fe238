package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comunas/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "comunas",
	Short: "Shapefile tables and choropleth maps for Santiago comunas",
	Long: `Reads the comuna boundary shapefile into a feature table, resolves comuna
names to features, bins data series into quantile colors and draws maps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cmd, c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("shapefile", "", "path to the comuna .shp file (overrides shapefile.path)")
	rootCmd.PersistentFlags().String("encoding", "", "attribute text encoding, e.g. latin1 (overrides shapefile.encoding)")
}

// applyFlagOverrides copies explicitly set persistent flags over the loaded
// configuration.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if f := cmd.Flags().Lookup("shapefile"); f != nil && f.Changed {
		c.Shapefile.Path = f.Value.String()
	}
	if f := cmd.Flags().Lookup("encoding"); f != nil && f.Changed {
		c.Shapefile.Encoding = f.Value.String()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
