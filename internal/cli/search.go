// internal/cli/search.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/law-makers/shelf/internal/app"
	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/internal/engine/dynamic"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/law-makers/shelf/internal/utils/headers"
	"github.com/law-makers/shelf/internal/utils/output"
	"github.com/law-makers/shelf/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	searchCount         int
	searchOut           string
	searchFormat        string
	searchSession       string
	searchHeaders       []string
	searchSnapshot      bool
	searchDebugMarkdown bool
	searchYes           bool
	searchPause         bool
)

// errNoProducts marks a search that finished without a single record
var errNoProducts = errors.New("no products found")

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search the storefront and export the listings",
	Long: `Opens the storefront search page for a keyword in headless Chrome and
extracts the first listings into an Excel workbook.

Without a keyword the command asks for the keyword, the number of products
and the save location, then confirms before starting.`,
	Example: `  # Ask for everything interactively
  shelf search

  # Top 20 results for a keyword, saved in ./exports
  shelf search "wireless mouse" -n 20 -o exports

  # Use saved cookies (delivery location, language) and write CSV
  shelf search "usb c cable" --session=home --format=csv

  # Copy each listing's markup before reading it
  shelf search laptop --snapshot`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchCount, "count", "n", config.DefaultCount,
		fmt.Sprintf("Number of products to extract (%d-%d)", config.MinCount, config.MaxCount))
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "", "Directory to save the export in (default: current directory)")
	searchCmd.Flags().StringVar(&searchFormat, "format", config.DefaultFormat, "Export format: xlsx, csv, or json")
	searchCmd.Flags().StringVar(&searchSession, "session", "", "Name of a saved session whose cookies are loaded first")
	searchCmd.Flags().StringArrayVarP(&searchHeaders, "header", "H", []string{}, "Extra request header (e.g., -H \"Accept-Language: en-IN\")")
	searchCmd.Flags().BoolVar(&searchSnapshot, "snapshot", false, "Copy each listing's markup once and read fields from the copy")
	searchCmd.Flags().BoolVar(&searchDebugMarkdown, "debug-markdown", false, "Also write a markdown copy of the page when nothing is extracted")
	searchCmd.Flags().BoolVarP(&searchYes, "yes", "y", false, "Skip the confirmation prompt")
	searchCmd.Flags().BoolVar(&searchPause, "pause", false, "Wait for Enter before exiting (default: on for interactive terminal runs)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.Context(), cmd.InOrStdin(), out)
	interactive := len(args) == 0

	pause := interactive && isTerminal(os.Stdin)
	if cmd.Flags().Changed("pause") {
		pause = searchPause
	}
	if pause {
		defer p.pause()
	}

	format, err := output.ParseFormat(searchFormat)
	if err != nil {
		return err
	}
	hdrs, err := headers.Parse(searchHeaders)
	if err != nil {
		return err
	}

	m := a.Config.Marketplace
	ui.Banner(out, fmt.Sprintf("🛒 %s Product Scraper 🛒", m.Name))

	keyword := strings.TrimSpace(strings.Join(args, " "))
	if interactive {
		if keyword, err = p.keyword(); err != nil {
			return interrupted(out, err)
		}
	}
	if keyword == "" {
		fmt.Fprintln(out, ui.Error("❌ Error: Keyword cannot be empty!"))
		return engine.NewEngineError(engine.ErrCodeValidation, "keyword cannot be empty", engine.ErrInvalidQuery)
	}

	count := searchCount
	if interactive && !cmd.Flags().Changed("count") {
		if count, err = p.count(config.DefaultCount); err != nil {
			return interrupted(out, err)
		}
	}
	if _, err := parseCount(fmt.Sprint(count), config.DefaultCount); err != nil {
		return err
	}

	dirArg := searchOut
	if interactive && !cmd.Flags().Changed("out") {
		if dirArg, err = p.saveDir(); err != nil {
			return interrupted(out, err)
		}
	}
	dir, err := resolveSaveDir(p, out, dirArg, interactive && !searchYes)
	if err != nil {
		return interrupted(out, err)
	}

	printPlan(out, searchPlan{
		Keyword: keyword,
		Count:   count,
		Dir:     dir,
		Format:  string(format),
		Session: searchSession,
	})

	if interactive && !searchYes {
		ok, err := p.yesNo("\n▶ Proceed with scraping?")
		if err != nil {
			return interrupted(out, err)
		}
		if !ok {
			fmt.Fprintf(out, "\n%s\n", ui.Warn("⚠ Scraping cancelled by user."))
			return nil
		}
	}

	return executeSearch(cmd, a, models.Query{Keyword: keyword, Count: count, OutputDir: dir}, format, hdrs)
}

// interrupted prints the interrupted summary when err comes from the user
// abandoning a prompt, and returns err classified for the caller
func interrupted(out io.Writer, err error) error {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	printInterrupted(out)
	return engine.Classify("search interrupted", err)
}

// resolveSaveDir turns the requested directory into an absolute path. A
// missing directory is created, after asking when ask is set. When it cannot
// be used the working directory is used instead.
func resolveSaveDir(p *prompter, out io.Writer, dir string, ask bool) (string, error) {
	abs, err := output.EnsureDir(dir, false)
	if err == nil {
		return abs, nil
	}
	if dir == "" {
		return "", err
	}

	create := true
	if ask {
		fmt.Fprintf(out, "\n%s\n", ui.Warn("⚠ Path doesn't exist: "+dir))
		if create, err = p.yesNo("   Create this directory?"); err != nil {
			return "", err
		}
	}
	if create {
		abs, err = output.EnsureDir(dir, true)
		if err == nil {
			fmt.Fprintf(out, "%s Created directory: %s\n", ui.Success("✓"), abs)
			return abs, nil
		}
		fmt.Fprintf(out, "%s\n", ui.Error("❌ Error creating directory: "+err.Error()))
	}

	fmt.Fprintln(out, "   Using current directory instead.")
	return output.EnsureDir("", false)
}

func executeSearch(cmd *cobra.Command, a *app.Application, q models.Query, format output.Format, hdrs map[string]string) error {
	out := cmd.OutOrStdout()
	m := a.Config.Marketplace

	fmt.Fprintf(out, "\n%s\n", ui.Rule("="))
	fmt.Fprintf(out, "🔍 Searching for '%s' on %s...\n", q.Keyword, m.Name)
	fmt.Fprintln(out, ui.Rule("="))

	var barTo io.Writer
	if isTerminal(os.Stderr) && a.Config.LogLevel != "debug" && !a.Config.JSONLog {
		barTo = os.Stderr
	}
	prog := newProgress(out, barTo)

	mode := models.ModeLive
	if searchSnapshot {
		mode = models.ModeSnapshot
	}
	searcher := a.Searcher(dynamic.RunOptions{
		Mode:          mode,
		SessionName:   searchSession,
		Headers:       hdrs,
		DebugMarkdown: searchDebugMarkdown,
		Observer:      prog.observer(),
	})

	log.Debug().Str("engine", searcher.Name()).Msg("Search starting")
	result, err := searcher.Search(cmd.Context(), q)
	prog.finish()

	if err != nil {
		if engine.IsCancelled(err) {
			printInterrupted(out)
			return err
		}
		log.Error().Err(err).Msg("Search failed")
		printFailure(out, err, "")
		return err
	}
	if result.Empty() {
		printFailure(out, nil, result.Diagnostic)
		return errNoProducts
	}

	fmt.Fprintln(out)
	ui.RecordsTable(out, result.Records)

	now := time.Now()
	name := output.Filename(q.Keyword, m.Source(), format, now)
	path := filepath.Join(q.OutputDir, name)
	meta := output.NewMeta(m.Brand, m.Name, q.Keyword, result.SearchURL, now)

	fmt.Fprintf(out, "\n💾 Saving data to %s...\n", strings.ToUpper(string(format)))
	if err := output.Save(format, result.Records, meta, path); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("records", len(result.Records)).
		Dur("elapsed", result.Elapsed).
		Msg("Results saved")

	printSuccess(out, len(result.Records), path, name)
	return nil
}
