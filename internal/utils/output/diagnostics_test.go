package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const blockedPage = `<html><head><title>Robot Check</title><script>var x = 1;</script></head>
<body><div class="a-box" style="color:red"><h4>Enter the characters you see below</h4>
<a href="/ref=cs_503_link" class="x">Amazon home</a></div></body></html>`

func TestSaveDiagnostic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.html")

	d, err := SaveDiagnostic(path, blockedPage, "https://www.amazon.in/s?k=x", false)
	if err != nil {
		t.Fatalf("SaveDiagnostic: %v", err)
	}
	if !filepath.IsAbs(d.HTMLPath) {
		t.Errorf("expected an absolute path, got %q", d.HTMLPath)
	}
	raw, err := os.ReadFile(d.HTMLPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != blockedPage {
		t.Error("page source must be written verbatim")
	}
	if d.MarkdownPath != "" {
		t.Error("markdown copy should only be written on request")
	}
}

func TestSaveDiagnostic_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.html")

	d, err := SaveDiagnostic(path, blockedPage, "https://www.amazon.in/s?k=x", true)
	if err != nil {
		t.Fatalf("SaveDiagnostic: %v", err)
	}
	if filepath.Base(d.MarkdownPath) != "debug.md" {
		t.Fatalf("unexpected markdown path %q", d.MarkdownPath)
	}
	raw, err := os.ReadFile(d.MarkdownPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	if !strings.Contains(text, "Enter the characters you see below") {
		t.Errorf("markdown lost the page text:\n%s", text)
	}
	if !strings.Contains(text, "https://www.amazon.in/ref=cs_503_link") {
		t.Errorf("relative link was not resolved:\n%s", text)
	}
	if strings.Contains(text, "var x") {
		t.Error("scripts should be stripped")
	}
}

func TestCleanHTML_KeepsListingHooks(t *testing.T) {
	out, err := CleanHTML(`<div data-component-type="s-search-result" data-asin="B01" class="big" onclick="x()"><img src="a.jpg" width="10"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`data-component-type="s-search-result"`, `data-asin="B01"`, `src="a.jpg"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s to survive cleaning: %s", want, out)
		}
	}
	for _, gone := range []string{"onclick", "class=", "width="} {
		if strings.Contains(out, gone) {
			t.Errorf("expected %s to be stripped: %s", gone, out)
		}
	}
}
