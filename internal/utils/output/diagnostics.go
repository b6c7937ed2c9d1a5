package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Diagnostic is the set of files written when a page yields no records
type Diagnostic struct {
	HTMLPath     string
	MarkdownPath string
}

// SaveDiagnostic writes the raw page markup to path and returns its absolute
// location. With markdown set a readable copy is written next to it with a
// .md extension; a failed conversion is logged and does not fail the dump.
func SaveDiagnostic(path, html, pageURL string, markdown bool) (Diagnostic, error) {
	var d Diagnostic

	abs, err := filepath.Abs(path)
	if err != nil {
		return d, err
	}
	if err := os.WriteFile(abs, []byte(html), 0644); err != nil {
		return d, fmt.Errorf("failed to write page source: %w", err)
	}
	d.HTMLPath = abs
	log.Debug().Str("file", abs).Int("bytes", len(html)).Msg("Page source saved")

	if !markdown {
		return d, nil
	}

	mdPath, err := SaveMarkdown(abs, html, pageURL)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to write markdown copy")
		return d, nil
	}
	d.MarkdownPath = mdPath
	return d, nil
}

// SaveMarkdown writes a readable copy of html next to htmlPath, swapping its
// extension for .md, and returns the absolute path written
func SaveMarkdown(htmlPath, html, pageURL string) (string, error) {
	text, err := ToMarkdown(html, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to convert page to markdown: %w", err)
	}
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", err
	}
	mdPath := strings.TrimSuffix(abs, filepath.Ext(abs)) + ".md"
	if err := os.WriteFile(mdPath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", mdPath, err)
	}
	return mdPath, nil
}
