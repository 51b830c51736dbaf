package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// PrintPredictionResults outputs milestone predictions, dispatching based on the output format configured.
func PrintPredictionResults(metric schema.MetricWithSource, preds []schema.MilestonePrediction, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONPredictions(metric, preds, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVPredictions(preds, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(w, metric, preds, cfg, fmtFloat)
		}, "Wrote prediction table")
	}
	return nil
}

func printJSONPredictions(metric schema.MetricWithSource, preds []schema.MilestonePrediction, cfg *contract.Config) error {
	payload := struct {
		Metric      string                       `json:"metric"`
		Predictions []schema.MilestonePrediction `json:"predictions"`
	}{Metric: metric.ID, Predictions: preds}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote JSON prediction results")
}

func printCSVPredictions(preds []schema.MilestonePrediction, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"milestone", "predicted_date", "days_until", "confidence", "growth_per_day", "r_squared", "points_used"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, p := range preds {
				row := []string{
					strconv.FormatFloat(p.Milestone, 'f', -1, 64),
					p.PredictedDate,
					strconv.Itoa(p.DaysUntil),
					contract.ConfidenceLabel(p.Confidence),
					fmtFloat(p.GrowthPerDay),
					fmt.Sprintf("%.3f", p.RSquared),
					strconv.Itoa(p.PointsUsed),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV prediction results")
}

func writePredictionTable(w io.Writer, metric schema.MetricWithSource, preds []schema.MilestonePrediction, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Milestone", "Predicted Date", "Days Until", "Confidence", "Growth/Day", "R-Squared"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for _, p := range preds {
		date := p.PredictedDate
		if date == "" {
			date = "n/a"
		}
		confidence := contract.ConfidenceLabel(p.Confidence)
		if cfg.UseColors {
			confidence = contract.ColorConfidenceLabel(p.Confidence)
		}
		rows = append(rows, []string{
			strconv.FormatFloat(p.Milestone, 'f', -1, 64),
			date,
			strconv.Itoa(p.DaysUntil),
			confidence,
			fmtFloat(p.GrowthPerDay),
			fmt.Sprintf("%.3f", p.RSquared),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: current value %s\n", metric.Label, fmtFloat(currentValue(preds)))
	return nil
}

func currentValue(preds []schema.MilestonePrediction) float64 {
	if len(preds) == 0 {
		return 0
	}
	return preds[0].CurrentValue
}
