package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestRenderHelp_Root(t *testing.T) {
	var buf bytes.Buffer
	renderHelp(&buf, rootCmd, true)

	out := buf.String()
	for _, want := range []string{"SHELF", "Usage", "shelf <command> [flags]", "Commands", "search", "parse", "sessions", "--marketplace"} {
		if !strings.Contains(out, want) {
			t.Errorf("root help is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHelp_Search(t *testing.T) {
	var buf bytes.Buffer
	renderHelp(&buf, searchCmd, true)

	out := buf.String()
	for _, want := range []string{"Examples", "$ shelf search", "-n, --count int", "(default 10)", "Global Flags", "--proxy"} {
		if !strings.Contains(out, want) {
			t.Errorf("search help is missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	renderHelp(&buf, searchCmd, false)
	short := buf.String()
	if strings.Contains(short, "Examples") || strings.Contains(short, "Global Flags") {
		t.Errorf("usage output should be the short form:\n%s", short)
	}
	if !strings.Contains(short, "shelf search --help") {
		t.Errorf("usage output should point at --help:\n%s", short)
	}
}

func TestExampleLines(t *testing.T) {
	lines := exampleLines("  # first\n  shelf search mouse\n\n  # second\n  $ shelf parse debug.html")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}
	if lines[2] != "" {
		t.Errorf("expected a blank line between a command and the next comment, got %q", lines[2])
	}
	if !strings.Contains(lines[4], "$ shelf parse debug.html") || strings.Contains(lines[4], "$ $") {
		t.Errorf("unexpected command line %q", lines[4])
	}
}

func TestFlagRows(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("count", "n", 10, "Number of products")
	fs.String("format", "xlsx", "Export `format`")
	fs.Bool("yes", false, "Skip prompts")
	fs.String("hidden", "", "")
	_ = fs.MarkHidden("hidden")

	rows := flagRows(fs)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}

	want := map[string]string{
		"-n, --count int":     "Number of products (default 10)",
		"    --format format": `Export format (default "xlsx")`,
		"    --yes":           "Skip prompts",
	}
	for _, r := range rows {
		if w, ok := want[r[0]]; !ok || w != r[1] {
			t.Errorf("unexpected row %q -> %q", r[0], r[1])
		}
	}
}
