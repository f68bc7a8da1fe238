package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/sells-group/comunas/internal/choropleth"
	"github.com/sells-group/comunas/internal/render"
)

// Config holds the full application configuration.
type Config struct {
	Shapefile ShapefileConfig `yaml:"shapefile" mapstructure:"shapefile"`
	Names     NamesConfig     `yaml:"names" mapstructure:"names"`
	Plot      PlotConfig      `yaml:"plot" mapstructure:"plot"`
	Palette   PaletteConfig   `yaml:"palette" mapstructure:"palette"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ShapefileConfig locates the comuna boundaries.
type ShapefileConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
	NameColumn string `yaml:"name_column" mapstructure:"name_column"`
}

// NamesConfig configures name normalization.
type NamesConfig struct {
	AliasesFile string `yaml:"aliases_file" mapstructure:"aliases_file"`
}

// PlotConfig holds figure defaults. Sizes are in inches and points.
type PlotConfig struct {
	WidthIn      float64 `yaml:"width_in" mapstructure:"width_in"`
	HeightIn     float64 `yaml:"height_in" mapstructure:"height_in"`
	Format       string  `yaml:"format" mapstructure:"format"`
	OutDir       string  `yaml:"out_dir" mapstructure:"out_dir"`
	TitleSize    float64 `yaml:"title_size" mapstructure:"title_size"`
	LabelSize    float64 `yaml:"label_size" mapstructure:"label_size"`
	OutlineColor string  `yaml:"outline_color" mapstructure:"outline_color"`
	FillColor    string  `yaml:"fill_color" mapstructure:"fill_color"`
	BorderColor  string  `yaml:"border_color" mapstructure:"border_color"`
}

// PaletteConfig selects the default choropleth palette.
type PaletteConfig struct {
	Default string `yaml:"default" mapstructure:"default"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Figure converts the plot settings into a render.Figure.
func (p PlotConfig) Figure() render.Figure {
	fig := render.DefaultFigure()
	if p.WidthIn > 0 {
		fig.Width = vg.Length(p.WidthIn) * vg.Inch
	}
	if p.HeightIn > 0 {
		fig.Height = vg.Length(p.HeightIn) * vg.Inch
	}
	if p.TitleSize > 0 {
		fig.TitleSize = vg.Points(p.TitleSize)
	}
	if p.LabelSize > 0 {
		fig.LabelSize = vg.Points(p.LabelSize)
	}
	if p.Format != "" {
		fig.Format = p.Format
	}
	if p.OutlineColor != "" {
		fig.OutlineColor = p.OutlineColor
	}
	return fig
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("comunas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMUNAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("shapefile.path", "")
	v.SetDefault("shapefile.encoding", "")
	v.SetDefault("shapefile.name_column", "NOM_COMUNA")
	v.SetDefault("names.aliases_file", "")
	v.SetDefault("plot.width_in", 8.0)
	v.SetDefault("plot.height_in", 8.0)
	v.SetDefault("plot.format", "png")
	v.SetDefault("plot.out_dir", ".")
	v.SetDefault("plot.title_size", 16.0)
	v.SetDefault("plot.label_size", 10.0)
	v.SetDefault("plot.outline_color", "k")
	v.SetDefault("plot.fill_color", "g")
	v.SetDefault("plot.border_color", "darkgreen")
	v.SetDefault("palette.default", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode needs. Modes: "table" needs a
// shapefile, "plot" needs a shapefile and a usable figure, "bins" needs a
// valid palette.
func (c *Config) Validate(mode string) error {
	var errs []string

	needShapefile := mode == "table" || mode == "plot"
	if needShapefile && c.Shapefile.Path == "" {
		errs = append(errs, "shapefile.path is required")
	}

	switch mode {
	case "table":
	case "plot":
		if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
			errs = append(errs, "plot.width_in and plot.height_in must be > 0")
		}
		for key, col := range map[string]string{
			"plot.outline_color": c.Plot.OutlineColor,
			"plot.fill_color":    c.Plot.FillColor,
			"plot.border_color":  c.Plot.BorderColor,
		} {
			if col == "" {
				continue
			}
			if _, err := render.ParseColor(col); err != nil {
				errs = append(errs, key+" is not a color")
			}
		}
	case "bins":
		if _, err := choropleth.ParsePalette(c.Palette.Default); err != nil {
			errs = append(errs, "palette.default is not a known palette")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
