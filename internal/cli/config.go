package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/render/plot"
	"github.com/Naivedya-sahu/lamp-v2/pkg/server"
)

// defaultConfigFile is looked up in the working directory when no
// --config flag is given.
const defaultConfigFile = "lamp.toml"

// fileConfig is the lamp.toml schema. Each section maps onto the option
// struct it configures; explicitly set flags override file values.
//
//	[layout]
//	spacing_h = 250
//	[layout.routing]
//	cell_size = 10
//	[device]
//	width = 10900
//	[server]
//	addr = ":8080"
type fileConfig struct {
	Layout  layout.Config `toml:"layout"`
	Device  plot.Device   `toml:"device"`
	Symbols string        `toml:"symbols"` // path to a TOML symbol overlay
	Server  server.Config `toml:"server"`
}

// loadConfig reads the TOML config file. An explicitly requested path
// must exist; the default lamp.toml is optional.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// configKey is the context key for the loaded file config.
const configKey ctxKey = 1

// withConfig returns a new context with the config attached.
func withConfig(ctx context.Context, cfg fileConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the file config from ctx. Commands run
// without a config (e.g., in tests) get the zero value, which validation
// fills with built-in defaults.
func configFromContext(ctx context.Context) fileConfig {
	if cfg, ok := ctx.Value(configKey).(fileConfig); ok {
		return cfg
	}
	return fileConfig{}
}

// layoutFlags binds the placement and routing tunables shared by the
// layout-producing commands. A zero value defers to the config file or
// the built-in default.
type layoutFlags struct {
	spacingH   int
	spacingV   int
	railHeight int
	cellSize   int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.spacingH, "spacing-h", 0, "horizontal pitch between chain members (0 = config)")
	cmd.Flags().IntVar(&f.spacingV, "spacing-v", 0, "vertical pitch between stacked components (0 = config)")
	cmd.Flags().IntVar(&f.railHeight, "rail-height", 0, "main rail y coordinate (0 = config)")
	cmd.Flags().IntVar(&f.cellSize, "cell-size", 0, "routing grid cell size (0 = config)")
}

// apply overlays explicitly set flags onto the config.
func (f *layoutFlags) apply(cfg *layout.Config) {
	if f.spacingH != 0 {
		cfg.SpacingH = f.spacingH
	}
	if f.spacingV != 0 {
		cfg.SpacingV = f.spacingV
	}
	if f.railHeight != 0 {
		cfg.RailHeight = f.railHeight
	}
	if f.cellSize != 0 {
		cfg.Routing.CellSize = f.cellSize
	}
}

// deviceFlags binds the plot device geometry for the plotting commands.
type deviceFlags struct {
	width    int
	height   int
	margin   int
	maxScale float64
}

func (f *deviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "device-width", 0, "plot device width in device units (0 = config)")
	cmd.Flags().IntVar(&f.height, "device-height", 0, "plot device height in device units (0 = config)")
	cmd.Flags().IntVar(&f.margin, "device-margin", 0, "plot margin in device units (0 = config)")
	cmd.Flags().Float64Var(&f.maxScale, "max-scale", 0, "maximum enlargement factor (0 = config)")
}

// apply overlays explicitly set flags onto the device.
func (f *deviceFlags) apply(d *plot.Device) {
	if f.width != 0 {
		d.Width = f.width
	}
	if f.height != 0 {
		d.Height = f.height
	}
	if f.margin != 0 {
		d.Margin = f.margin
	}
	if f.maxScale != 0 {
		d.MaxScale = f.maxScale
	}
}
