// internal/cli/report.go
package cli

import (
	"fmt"
	"io"

	"github.com/law-makers/shelf/internal/ui"
)

// searchPlan is what a search is about to do, shown before it starts
type searchPlan struct {
	Keyword string
	Count   int
	Dir     string
	Format  string
	Session string
}

func printPlan(w io.Writer, p searchPlan) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Rule("="))
	fmt.Fprintln(w, ui.Bold("📋 SCRAPING CONFIGURATION:"))
	pairs := [][2]string{
		{"Keyword", p.Keyword},
		{"Products to scrape", fmt.Sprint(p.Count)},
		{"Save location", p.Dir},
		{"Format", p.Format},
	}
	if p.Session != "" {
		pairs = append(pairs, [2]string{"Session", p.Session})
	}
	ui.KeyValues(w, pairs)
	fmt.Fprintln(w, ui.Rule("="))
}

func printSuccess(w io.Writer, count int, path, name string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Rule("="))
	fmt.Fprintln(w, ui.Success("✅ SUCCESS!"))
	fmt.Fprintln(w, ui.Rule("="))
	fmt.Fprintf(w, "📊 Scraped products: %d\n", count)
	fmt.Fprintf(w, "📁 File saved to: %s\n", path)
	fmt.Fprintf(w, "📝 File name: %s\n", name)
	fmt.Fprintln(w, ui.Rule("="))
}

// printFailure explains an empty result. cause is nil when the page loaded
// but no listing produced a record.
func printFailure(w io.Writer, cause error, diagnostic string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Rule("="))
	fmt.Fprintln(w, ui.Error("❌ SCRAPING FAILED"))
	fmt.Fprintln(w, ui.Rule("="))
	if cause != nil {
		fmt.Fprintf(w, "Reason: %v\n\n", cause)
	}
	fmt.Fprintln(w, "No products found! This could be due to:")
	fmt.Fprintln(w, "  1. Amazon blocking automated access")
	fmt.Fprintln(w, "  2. Network connectivity issues")
	fmt.Fprintln(w, "  3. Page structure has changed")
	fmt.Fprintln(w, "  4. Invalid search keyword")
	if diagnostic != "" {
		fmt.Fprintf(w, "\n🔎 Page source saved to: %s\n", diagnostic)
		fmt.Fprintf(w, "   Re-run extraction offline with: shelf parse %s --explain\n", diagnostic)
	}
	fmt.Fprintln(w, "\n💡 Tips:")
	fmt.Fprintln(w, "  - Try a different keyword")
	fmt.Fprintln(w, "  - Check your internet connection")
	fmt.Fprintln(w, "  - Try again after a few minutes")
	fmt.Fprintln(w, ui.Rule("="))
}

func printInterrupted(w io.Writer) {
	fmt.Fprintf(w, "\n\n%s\n", ui.Warn("⚠ Scraping interrupted by user."))
}
