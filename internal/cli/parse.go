// internal/cli/parse.go
package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/internal/engine/static"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/law-makers/shelf/internal/utils/output"
	urlutil "github.com/law-makers/shelf/internal/utils/url"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	parseLimit    int
	parseExplain  bool
	parseOut      string
	parseFormat   string
	parseKeyword  string
	parseURL      string
	parseMarkdown bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <page.html>",
	Short: "Extract listings from a saved results page",
	Long: `Runs the same field extraction as search over a results page saved to disk,
such as the debug.html written when a search finds nothing.

No browser is started. Use --explain to see which selector filled each field.`,
	Example: `  # Show what a saved page yields
  shelf parse debug.html

  # Show which selector produced every field
  shelf parse debug.html --explain

  # Export the records next to the page
  shelf parse results.html --out . --keyword "wireless mouse"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().IntVarP(&parseLimit, "count", "n", config.MaxCount,
		fmt.Sprintf("Number of listings to read (%d-%d)", config.MinCount, config.MaxCount))
	parseCmd.Flags().BoolVar(&parseExplain, "explain", false, "Print the selector that filled each field")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Directory to save an export in (default: no export)")
	parseCmd.Flags().StringVar(&parseFormat, "format", config.DefaultFormat, "Export format: xlsx, csv, or json")
	parseCmd.Flags().StringVar(&parseKeyword, "keyword", "", "Keyword used in the export name (default: the page file name)")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "Address the page was saved from, used to resolve relative links")
	parseCmd.Flags().BoolVar(&parseMarkdown, "markdown", false, "Also write a readable markdown copy of the page next to it")
}

func runParse(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	out := cmd.OutOrStdout()
	path := args[0]

	if _, err := parseCount(fmt.Sprint(parseLimit), config.MaxCount); err != nil {
		return err
	}
	format, err := output.ParseFormat(parseFormat)
	if err != nil {
		return err
	}
	if parseURL != "" {
		if err := urlutil.ValidateURL(parseURL); err != nil {
			return err
		}
	}

	page, err := a.ParseSaved(path)
	if err != nil {
		return err
	}
	if parseURL != "" {
		page.URL = parseURL
	}

	if parseMarkdown {
		mdPath, err := writePageMarkdown(page, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Markdown copy: %s\n", ui.Success("✓"), mdPath)
	}

	batch := page.Extract(a.Extractor(page.URL), parseLimit, nil)
	fmt.Fprintf(out, "\n%s %s: %d listings, %d considered, %d kept\n",
		ui.Accent("📄"), filepath.Base(path), batch.Found, batch.Considered, len(batch.Records))

	if parseExplain && len(batch.Outcomes) > 0 {
		fmt.Fprintln(out)
		ui.OutcomesTable(out, batch.Outcomes)
	}

	if batch.Found == 0 {
		return engine.NewEngineError(engine.ErrCodeParseError, "page has no result listings", engine.ErrNoListings).
			WithDetail("file", path).
			WithDetail("title", page.Title())
	}
	if len(batch.Records) == 0 {
		return errNoProducts
	}

	fmt.Fprintln(out)
	ui.RecordsTable(out, batch.Records)

	if parseOut == "" {
		return nil
	}

	dir, err := output.EnsureDir(parseOut, true)
	if err != nil {
		return err
	}
	keyword := parseKeyword
	if keyword == "" {
		keyword = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	m := a.Config.Marketplace
	now := time.Now()
	name := output.Filename(keyword, m.Source(), format, now)
	meta := output.NewMeta(m.Brand, m.Name, keyword, page.URL, now)
	if err := output.Save(format, batch.Records, meta, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info().Str("file", filepath.Join(dir, name)).Int("records", len(batch.Records)).Msg("Results saved")
	fmt.Fprintf(out, "\n%s Saved to %s\n", ui.Success("✓"), filepath.Join(dir, name))
	return nil
}

// writePageMarkdown renders the parsed page back to markup and saves a
// markdown copy next to path
func writePageMarkdown(page *static.Page, path string) (string, error) {
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return output.SaveMarkdown(path, html, page.URL)
}
