package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"github.com/ktg84478/erovista/internal/domain"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutput(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// encode writes v as JSON or YAML, or calls fill to build a table.
func encode(w io.Writer, format outputFormat, v any, fill func(t table.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding as yaml failed: %w", err)
		}
		_, err = w.Write(data)
		return err
	case outputTable:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		fill(t)
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func encodeCapacity(w io.Writer, format outputFormat, results []domain.MaterialCapacity) error {
	return encode(w, format, results, func(t table.Writer) {
		t.AppendHeader(table.Row{"Material", "Status", "EPA"})
		for _, r := range results {
			epa := r.Status.Message()
			if r.Status == domain.StatusAvailable {
				epa = domain.FormatNumber(r.EPA)
			}
			t.AppendRow(table.Row{r.Material, r.Status, epa})
		}
	})
}

func encodeSizes(w io.Writer, format outputFormat, results []domain.MaterialSizes) error {
	return encode(w, format, results, func(t table.Writer) {
		t.AppendHeader(table.Row{"Material", "Status", "Pole Sizes"})
		for _, r := range results {
			sizes := r.Status.Message()
			if r.Status == domain.StatusSolved {
				sizes = strings.Join(r.Sizes, ", ")
			}
			t.AppendRow(table.Row{r.Material, r.Status, sizes})
		}
	})
}

func encodeValues(w io.Writer, format outputFormat, field domain.Field, values []string) error {
	return encode(w, format, values, func(t table.Writer) {
		t.AppendHeader(table.Row{field.String()})
		for _, v := range values {
			t.AppendRow(table.Row{v})
		}
	})
}

type datasetSummary struct {
	Source string       `json:"source"`
	Layout string       `json:"layout"`
	Lines  int          `json:"lines"`
	Stats  domain.Stats `json:"stats"`
}

func encodeSummary(w io.Writer, format outputFormat, s datasetSummary) error {
	return encode(w, format, s, func(t table.Writer) {
		t.AppendHeader(table.Row{"Property", "Value"})
		t.AppendRow(table.Row{"source", s.Source})
		t.AppendRow(table.Row{"layout", s.Layout})
		t.AppendRow(table.Row{"lines", s.Lines})
		t.AppendRow(table.Row{"rows", s.Stats.Rows})
		t.AppendRow(table.Row{"materials", strings.Join(s.Stats.Materials, ", ")})
		t.AppendRow(table.Row{"sentinel rows", s.Stats.SentinelRows})
		for _, f := range domain.FieldOrder {
			t.AppendRow(table.Row{"distinct " + f.String(), s.Stats.Distinct[f.String()]})
		}
	})
}
