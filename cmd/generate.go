package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"propmarket/internal/dataset"
	"propmarket/internal/synthetic"
)

var (
	genCount int
	genSeed  int64
	genOut   string
)

// generateCmd writes a synthetic dataset for running without real data.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic property dataset",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genCount, "count", "n", synthetic.DefaultCount, "number of records")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (default: time-based)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output file (default data/processed/property_data_synthetic.csv)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genCount <= 0 {
		return fmt.Errorf("--count must be positive, got %d", genCount)
	}
	seed := genSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	out := genOut
	if out == "" {
		out = dataset.NewPaths(cfg.DataDir).Synthetic
	}

	if err := synthetic.WriteFile(out, genCount, seed); err != nil {
		return err
	}
	logger.Info("synthetic data generated",
		zap.String("path", out),
		zap.Int("records", genCount),
		zap.Int64("seed", seed))
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d properties and saved to %s\n", genCount, out)
	return nil
}
