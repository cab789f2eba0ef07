package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"propmarket/internal/dataset"
	"propmarket/internal/process"
)

var sampleSize int

// processCmd cleans raw price-paid data into the processed CSV and sample.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Clean data/raw/pp-2024.csv into the processed dataset and sample",
	Long: `Reads the headerless HM Land Registry price-paid file, keeps price, date,
postcode, property type, new-build flag, tenure and town, derives the postcode
area, and writes:
  data/processed/property_data_real.csv     full cleaned dataset
  data/samples/property_data_real_sample.csv random sample (5,000 rows by default)`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().IntVar(&sampleSize, "sample-size", 0, "rows in the sample (default from config, 5000)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	size := cfg.Sample.Size
	if cmd.Flags().Changed("sample-size") {
		size = sampleSize
	}
	opts := process.OptionsFor(dataset.NewPaths(cfg.DataDir), size, cfg.Sample.Seed)
	logger.Info("processing raw data", zap.String("path", opts.RawPath))

	res, err := process.Run(opts)
	if err != nil {
		return err
	}
	logger.Info("raw data processed",
		zap.Int("rows", res.Rows),
		zap.Int("short_rows", res.Short),
		zap.Int("sampled", res.Sampled))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d property records\n", res.Rows)
	fmt.Fprintf(out, "  %s (full dataset)\n", opts.OutPath)
	fmt.Fprintf(out, "  %s (%d row sample)\n", opts.SamplePath, res.Sampled)
	fmt.Fprintln(out, "Ready to analyze: propmarket real")
	return nil
}
