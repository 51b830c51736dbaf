package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/schema"
)

// PrintMetricsList outputs the metric catalog, dispatching based on the output format configured.
func PrintMetricsList(metrics []schema.MetricWithSource, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONMetrics(metrics, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVMetrics(metrics, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(w, metrics)
		}, "Wrote metric catalog table")
	}
	return nil
}

func printJSONMetrics(metrics []schema.MetricWithSource, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, metrics)
	}, "Wrote JSON metric catalog")
}

func printCSVMetrics(metrics []schema.MetricWithSource, cfg *contract.Config) error {
	header := []string{"id", "label", "source", "measured_since"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, m := range metrics {
				row := []string{m.ID, m.Label, m.SourceID, m.MeasuredSince}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV metric catalog")
}

func writeMetricsTable(w io.Writer, metrics []schema.MetricWithSource) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Label", "Source"})

	var rows [][]string
	for _, m := range metrics {
		rows = append(rows, []string{m.ID, m.Label, m.SourceLabel})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	ids := make([]string, 0, len(metrics))
	for _, m := range metrics {
		ids = append(ids, m.ID)
	}
	fmt.Fprintf(w, "%d metrics available: %s\n", len(metrics), strings.Join(ids, ", "))
	return nil
}
