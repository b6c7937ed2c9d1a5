// internal/cli/progress.go
package cli

import (
	"fmt"
	"io"

	"github.com/law-makers/shelf/internal/engine/dynamic"
	"github.com/law-makers/shelf/internal/engine/listing"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// progress reports extraction either as a bar on a terminal or as one line
// per listing everywhere else
type progress struct {
	out   io.Writer
	barTo io.Writer
	bar   *progressbar.ProgressBar
	total int
}

// newProgress prints per-listing lines to out. A non-nil barTo switches to
// a progress bar drawn there instead.
func newProgress(out, barTo io.Writer) *progress {
	return &progress{out: out, barTo: barTo}
}

func (p *progress) observer() dynamic.Observer {
	return dynamic.Observer{
		OnListings: p.listings,
		OnOutcome:  p.outcome,
	}
}

func (p *progress) listings(found, considered int) {
	p.total = considered
	fmt.Fprintf(p.out, "%s Found %d products. Extracting top %d...\n", ui.Success("✓"), found, considered)
	if p.barTo != nil && considered > 0 {
		p.bar = progressbar.NewOptions(considered,
			progressbar.OptionSetWriter(p.barTo),
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		return
	}
	fmt.Fprintln(p.out, ui.Rule("-"))
}

func (p *progress) outcome(o listing.Outcome) {
	if p.bar != nil {
		p.bar.Describe(ui.Truncate(o.Record.Title, 30))
		_ = p.bar.Add(1)
		return
	}
	fmt.Fprintln(p.out, outcomeLine(o, p.total))
}

// finish closes the bar or the block of listing lines
func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
		return
	}
	if p.total > 0 {
		fmt.Fprintln(p.out, ui.Rule("-"))
	}
}

func outcomeLine(o listing.Outcome, total int) string {
	if !o.Kept {
		return fmt.Sprintf("[%2d/%d] %s", o.Index, total, ui.Warn("⚠ skipped, no title or link found"))
	}
	return fmt.Sprintf("[%2d/%d] %s %s\n        Price: %s | Rating: %s | Reviews: %s",
		o.Index, total, ui.Success("✓"), ui.Truncate(o.Record.Title, 50),
		o.Record.Price, o.Record.Rating, o.Record.ReviewCount)
}
