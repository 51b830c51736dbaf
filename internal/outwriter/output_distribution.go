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
	"github.com/n8n-pulse/pulse/schema"
)

// PrintDistributionResults outputs a distribution, dispatching based on the output format configured.
func PrintDistributionResults(data *schema.DistributionData, field schema.DistributionField, cfg *contract.Config) error {
	if data == nil {
		return errors.New("no distribution data to print")
	}
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONDistribution(data, field, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVDistribution(data, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionTable(w, data, field, fmtFloat)
		}, "Wrote distribution table")
	}
	return nil
}

func printJSONDistribution(data *schema.DistributionData, field schema.DistributionField, cfg *contract.Config) error {
	payload := struct {
		Field string                   `json:"field"`
		Data  *schema.DistributionData `json:"data"`
	}{Field: field.ID, Data: data}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote JSON distribution results")
}

func printCSVDistribution(data *schema.DistributionData, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"bin", "min", "max", "count"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, b := range data.Bins {
				row := []string{b.Label, fmtFloat(b.Min), fmtFloat(b.Max), strconv.Itoa(b.Count)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV distribution results")
}

func writeDistributionTable(w io.Writer, data *schema.DistributionData, field schema.DistributionField, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Bin", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for _, b := range data.Bins {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count)})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := data.Stats
	fmt.Fprintf(w, "%s: average %s, median %s, max %s, total %s\n",
		field.Label, fmtFloat(s.Average), fmtFloat(s.Median), fmtFloat(s.Max), fmtFloat(s.Total))
	return nil
}
