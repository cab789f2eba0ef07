package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"propmarket/internal/analysis"
	"propmarket/internal/export"
)

var exportOut string

// exportCmd saves per-area statistics to a workbook.
var exportCmd = &cobra.Command{
	Use:   "export [auto|real|synthetic|sample]",
	Short: "Write per-area price statistics to an .xlsx workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "areas.xlsx", "workbook to write")
	exportCmd.Flags().BoolVar(&london, "london", false, "restrict the export to London postcode areas")
}

func runExport(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	table, src, _, err := loadTable(mode)
	if err != nil {
		return err
	}
	if london {
		table = analysis.FilterAreas(table, analysis.LondonAreas)
	}

	summaries, err := analysis.AreaSummaries(table)
	if err != nil {
		return err
	}
	names := loadGazetteer()
	for i, s := range summaries {
		summaries[i].City = nameOr(names, s.Area, s.City)
	}

	if err := export.WriteWorkbook(exportOut, src.Label, summaries); err != nil {
		return err
	}
	logger.Info("area summary exported", zap.String("path", exportOut), zap.Int("areas", len(summaries)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d areas to %s\n", len(summaries), exportOut)
	return nil
}
