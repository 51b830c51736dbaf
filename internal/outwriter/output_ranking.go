package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/n8n-pulse/pulse/internal/contract"
	"github.com/n8n-pulse/pulse/internal/parquet"
	"github.com/n8n-pulse/pulse/schema"
)

// PrintRankingResults outputs a ranking, dispatching based on the output format configured.
func PrintRankingResults(sourceID string, data *schema.RankingData, fields []schema.RankingField, cfg *contract.Config) error {
	if data == nil {
		return errors.New("no ranking data to print")
	}
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONRanking(sourceID, data, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVRanking(data, fields, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteRankingParquet(parquet.ConvertRanking(sourceID, data), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(w, data, fields, cfg, fmtFloat)
		}, "Wrote ranking table")
	}
	return nil
}

func printJSONRanking(sourceID string, data *schema.RankingData, cfg *contract.Config) error {
	payload := struct {
		Source string              `json:"source"`
		Data   *schema.RankingData `json:"data"`
	}{Source: sourceID, Data: data}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote JSON ranking results")
}

func printCSVRanking(data *schema.RankingData, fields []schema.RankingField, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"rank", "label", "group"}
	for _, f := range fields {
		header = append(header, f.ID)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for i, r := range data.Rows {
				row := []string{strconv.Itoa(i + 1), r.Label, r.Group}
				for _, f := range fields {
					row = append(row, formatRankedValue(r, f, fmtFloat))
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV ranking results")
}

func writeRankingTable(w io.Writer, data *schema.RankingData, fields []schema.RankingField, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Label"}
	if len(data.Groups) > 0 {
		headers = append(headers, "Group")
	}
	for _, f := range fields {
		headers = append(headers, f.Label)
	}
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var rows [][]string
	for i, r := range data.Rows {
		row := []string{strconv.Itoa(i + 1), contract.TruncateLabel(r.Label, maxLabel)}
		if len(data.Groups) > 0 {
			row = append(row, r.Group)
		}
		for _, f := range fields {
			row = append(row, formatRankedValue(r, f, fmtFloat))
		}
		rows = append(rows, row)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// formatRankedValue renders one field value for a row, honoring the field's
// value type. Missing values render empty.
func formatRankedValue(r schema.RankingRow, f schema.RankingField, fmtFloat func(float64) string) string {
	v, ok := r.Values[f.ID]
	if !ok {
		return ""
	}
	if f.Type == schema.PercentageValue {
		return fmtFloat(v) + "%"
	}
	return fmtFloat(v)
}
