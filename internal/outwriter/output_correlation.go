package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// CorrelationSummary carries the fitted statistics printed alongside the
// scatter points.
type CorrelationSummary struct {
	XLabel  string  `json:"xLabel"`
	YLabel  string  `json:"yLabel"`
	R       float64 `json:"r"`
	HasFit  bool    `json:"hasFit"` // Trend line requested and fit succeeded
	Slope   float64 `json:"slope,omitempty"`
	Interc  float64 `json:"intercept,omitempty"`
	RSquare float64 `json:"rSquared,omitempty"`
}

// PrintCorrelationResults outputs correlation points, dispatching based on the output format configured.
func PrintCorrelationResults(points []schema.CorrelationPoint, summary CorrelationSummary, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONCorrelation(points, summary, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVCorrelation(points, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationTable(w, points, summary, cfg, fmtFloat)
		}, "Wrote correlation table")
	}
	return nil
}

func printJSONCorrelation(points []schema.CorrelationPoint, summary CorrelationSummary, cfg *contract.Config) error {
	payload := struct {
		Summary CorrelationSummary        `json:"summary"`
		Points  []schema.CorrelationPoint `json:"points"`
	}{Summary: summary, Points: points}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote JSON correlation results")
}

func printCSVCorrelation(points []schema.CorrelationPoint, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"x", "y", "label", "group"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, p := range points {
				row := []string{fmtFloat(p.X), fmtFloat(p.Y), p.Label, p.Group}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV correlation results")
}

func writeCorrelationTable(w io.Writer, points []schema.CorrelationPoint, summary CorrelationSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Group", summary.XLabel, summary.YLabel})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var rows [][]string
	for _, p := range points {
		rows = append(rows, []string{
			contract.TruncateLabel(p.Label, maxLabel),
			p.Group,
			fmtFloat(p.X),
			fmtFloat(p.Y),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Pearson r: %.3f over %d points\n", summary.R, len(points))
	if summary.HasFit {
		fmt.Fprintf(w, "Trend: y = %.3f*x + %.3f (R-squared %.3f)\n", summary.Slope, summary.Interc, summary.RSquare)
	}
	return nil
}
