package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/law-makers/shelf/pkg/models"
)

var (
	boldStyle    = text.Colors{text.Bold}
	successStyle = text.Colors{text.FgGreen}
	infoStyle    = text.Colors{text.Faint, text.FgYellow}
	warnStyle    = text.Colors{text.FgYellow}
	errorStyle   = text.Colors{text.FgRed}
	accentStyle  = text.Colors{text.FgCyan}
	dimStyle     = text.Colors{text.Faint}
)

func Bold(s string) string    { return boldStyle.Sprint(s) }
func Success(s string) string { return successStyle.Sprint(s) }
func Info(s string) string    { return infoStyle.Sprint(s) }
func Warn(s string) string    { return warnStyle.Sprint(s) }
func Error(s string) string   { return errorStyle.Sprint(s) }
func Accent(s string) string  { return accentStyle.Sprint(s) }
func Dim(s string) string     { return dimStyle.Sprint(s) }

// RuleWidth is the width of horizontal separators
const RuleWidth = 60

// Rule returns a separator line made of ch
func Rule(ch string) string {
	return strings.Repeat(ch, RuleWidth)
}

// Banner prints title between two heavy rules
func Banner(w io.Writer, title string) {
	fmt.Fprintln(w, Rule("="))
	fmt.Fprintf(w, "%s\n", Bold(centered(title)))
	fmt.Fprintln(w, Rule("="))
}

func centered(s string) string {
	pad := (RuleWidth - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Truncate shortens s to at most max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return text.Trim(s, max)
	}
	return text.Trim(s, max-3) + "..."
}

// RecordsTable renders records as a rounded console table. Titles are
// shortened so the table fits a terminal; the export keeps them whole.
func RecordsTable(w io.Writer, records []models.ProductRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Product", "Price", "Rating", "Reviews"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, Truncate(r.Title, 50), r.Price, r.Rating, r.ReviewCount})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// KeyValues renders label/value pairs as a two-column table without a header
func KeyValues(w io.Writer, pairs [][2]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	for _, p := range pairs {
		t.AppendRow(table.Row{Bold(p[0]), p[1]})
	}
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Render()
}
