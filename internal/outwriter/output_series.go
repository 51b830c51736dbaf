package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/parquet"
	"github.com/n8n-pulse/pulse/schema"
)

// PrintSeriesResults outputs metric series, dispatching based on the output format configured.
func PrintSeriesResults(series []*schema.MetricSeries, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONSeries(series, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVSeries(series, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteSeriesParquet(parquet.ConvertSeries(series), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTable(w, series, fmtFloat)
		}, "Wrote series table")
	}
	return nil
}

func printJSONSeries(series []*schema.MetricSeries, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, series)
	}, "Wrote JSON series results")
}

func printCSVSeries(series []*schema.MetricSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"metric", "source", "granularity", "date", "value"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, s := range series {
				for _, p := range s.Points {
					row := []string{s.Metric.ID, s.Metric.SourceID, string(s.Granularity), p.Date, fmtFloat(p.Value)}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}, "Wrote CSV series results")
}

// writeSeriesTable writes all series merged on date, one column per metric.
func writeSeriesTable(w io.Writer, series []*schema.MetricSeries, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Date"}
	byDate := make(map[string][]string)
	var dates []string

	for i, s := range series {
		headers = append(headers, s.Metric.Label)
		for _, p := range s.Points {
			row, ok := byDate[p.Date]
			if !ok {
				row = make([]string, len(series))
				byDate[p.Date] = row
				dates = append(dates, p.Date)
			}
			row[i] = fmtFloat(p.Value)
		}
	}
	sort.Strings(dates)

	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range dates {
		data = append(data, append([]string{d}, byDate[d]...))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, s := range series {
		since := s.Metric.MeasuredSince
		if since == "" {
			continue
		}
		fmt.Fprintf(w, "Note: %s is measured since %s\n", s.Metric.Label, since)
	}
	return nil
}
