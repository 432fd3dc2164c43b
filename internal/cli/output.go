package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/levirogalla/donna-cli/internal/manager"
	"go.yaml.in/yaml/v3"
)

// render prints v as YAML when --output yaml is set, otherwise a table of
// rows. empty is printed when there are no rows.
func render(w io.Writer, v any, headers []string, rows [][]string, empty string) error {
	switch flagOutput {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling output: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q (use table or yaml)", flagOutput)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = text.FgHiCyan.Sprint(h)
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

func printReport(w io.Writer, report manager.SweepReport) {
	if n := len(report.Records); n > 0 {
		fmt.Fprintf(w, "Updated %d project record(s)\n", n)
	}
	if len(report.ProjectTypes) > 0 {
		fmt.Fprintf(w, "Updated project type(s): %s\n", strings.Join(report.ProjectTypes, ", "))
	}
	for _, p := range report.Skipped {
		fmt.Fprintf(w, "Skipped unreadable record %s\n", p)
	}
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}
