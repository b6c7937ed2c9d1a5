package output

import (
	"fmt"
	"strings"

	"github.com/law-makers/shelf/pkg/models"
)

// Format selects the export file type
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be xlsx, csv, or json)", s)
	}
}

// Extension returns the file extension for f, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Save writes records to path in the given format
func Save(format Format, records []models.ProductRecord, meta Meta, path string) error {
	switch format {
	case FormatCSV:
		return SaveCSV(records, path)
	case FormatJSON:
		return SaveJSON(records, meta, path)
	case FormatXLSX, "":
		return SaveXLSX(records, meta, path)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
