package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/law-makers/shelf/internal/engine/listing"
)

// OutcomesTable shows, for every considered listing, which strategy filled
// each field. A dash marks a field that fell through to the placeholder.
func OutcomesTable(w io.Writer, outcomes []listing.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"#", "Kept"}
	for _, f := range listing.Fields {
		header = append(header, string(f))
	}
	t.AppendHeader(header)

	for _, o := range outcomes {
		kept := Error("no")
		if o.Kept {
			kept = Success("yes")
		}
		row := table.Row{o.Index, kept}
		for _, f := range listing.Fields {
			s := o.Trace[f]
			if s == "" {
				s = "-"
			}
			row = append(row, Truncate(s, 40))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
