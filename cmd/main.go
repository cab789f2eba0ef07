package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"propmarket/internal/analysis"
	"propmarket/internal/config"
	"propmarket/internal/dataset"
	"propmarket/internal/gazetteer"
	"propmarket/internal/logging"
	"propmarket/internal/report"
	"propmarket/internal/types"
)

var (
	// Global flags
	configPath string
	dataDir    string
	verbose    bool

	// Analysis flags
	breakdown bool
	london    bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "propmarket [auto|real|synthetic|sample]",
	Short: "Summarise UK property sale prices by postcode area",
	Long: `Loads a CSV of property sales and reports, per postcode area:
  - the most affordable area (lowest mean price)
  - the highest value area (highest mean price)
  - the areas with the most and fewest sales

Dataset modes:
  auto       real data if processed, otherwise synthetic (default)
  real       data/processed/property_data_real.csv
  synthetic  data/processed/property_data_synthetic.csv
  sample     data/samples/property_data_real_sample.csv`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			loaded.DataDir = dataDir
		}
		cfg = loaded

		l, err := logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := ""
		if len(args) > 0 {
			mode = args[0]
		}
		return analyze(cmd.OutOrStdout(), mode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory holding raw/, processed/ and samples/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().BoolVar(&breakdown, "breakdown", false, "also compare new-build/existing and freehold/leasehold prices")
	rootCmd.Flags().BoolVar(&london, "london", false, "restrict the analysis to London postcode areas")

	rootCmd.AddCommand(processCmd, generateCmd, exportCmd, browseCmd)
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadTable resolves mode to a dataset and loads it.
func loadTable(mode string) (*types.PropertyTable, dataset.Source, dataset.LoadStats, error) {
	m, err := dataset.ParseMode(mode)
	if err != nil {
		return nil, dataset.Source{}, dataset.LoadStats{}, err
	}
	src, err := dataset.Select(m, dataset.NewPaths(cfg.DataDir))
	if err != nil {
		return nil, src, dataset.LoadStats{}, err
	}
	logger.Debug("dataset selected",
		zap.String("mode", string(m)),
		zap.String("resolved", string(src.Mode)),
		zap.String("path", src.Path))

	table, stats, err := dataset.Load(src, dataset.LoadOptions{MinPrice: cfg.MinPrice})
	if err != nil {
		return nil, src, stats, err
	}
	logger.Info("dataset loaded",
		zap.String("dataset", src.Label),
		zap.Int("read", stats.Read),
		zap.Int("loaded", stats.Loaded),
		zap.Int("invalid_price", stats.InvalidPrice),
		zap.Int("missing_postcode", stats.MissingArea),
		zap.Int("below_min_price", stats.BelowMinPrice),
		zap.Int("areas", len(analysis.Areas(table))))
	return table, src, stats, nil
}

// analyze runs the full pipeline and prints the report to w. Nothing is
// written unless every analysis succeeds.
func analyze(w io.Writer, mode string) error {
	table, src, stats, err := loadTable(mode)
	if err != nil {
		return err
	}

	rep := report.Report{Label: src.Label, Stats: stats}
	if london {
		table = analysis.FilterAreas(table, analysis.LondonAreas)
		rep.Scope = "London"
		rep.ScopeCount = table.Len()
		logger.Info("filtered to London areas", zap.Int("records", table.Len()))
	}

	if rep.Affordable, err = analysis.MostAffordable(table); err != nil {
		return err
	}
	if rep.Highest, err = analysis.HighestValue(table); err != nil {
		return err
	}
	if rep.Inventory, err = analysis.Inventory(table); err != nil {
		return err
	}
	if breakdown {
		rep.Breakdown = []analysis.Comparison{
			analysis.CompareNewBuild(table),
			analysis.CompareTenure(table),
		}
	}

	names := loadGazetteer()
	rep.Affordable.City = nameOr(names, rep.Affordable.Area, rep.Affordable.City)
	rep.Highest.City = nameOr(names, rep.Highest.Area, rep.Highest.City)
	rep.Inventory.Most.City = nameOr(names, rep.Inventory.Most.Area, rep.Inventory.Most.City)
	rep.Inventory.Least.City = nameOr(names, rep.Inventory.Least.Area, rep.Inventory.Least.City)
	for i, a := range rep.Inventory.LeastAreas {
		rep.Inventory.LeastAreas[i].City = nameOr(names, a.Area, a.City)
	}

	return report.Print(w, rep, report.Options{Color: useColor(w)})
}

// loadGazetteer reads the configured area-name shapefile. It is optional:
// failures are logged and the report falls back to bare area codes.
func loadGazetteer() *gazetteer.Gazetteer {
	g := cfg.Gazetteer
	if g.Path == "" {
		return nil
	}
	names, err := gazetteer.Load(g.Path, g.CodeField, g.NameField)
	if err != nil {
		logger.Warn("area names unavailable", zap.String("path", g.Path), zap.Error(err))
		return nil
	}
	logger.Debug("area names loaded", zap.String("path", g.Path), zap.Int("areas", names.Len()))
	return names
}

// nameOr keeps a city taken from the data and otherwise asks the gazetteer.
func nameOr(g *gazetteer.Gazetteer, area, city string) string {
	if city != "" {
		return city
	}
	return g.Name(area)
}
