package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/law-makers/shelf/pkg/models"
)

type indexedRecord struct {
	Index int `json:"index"`
	models.ProductRecord
}

type jsonExport struct {
	Title       string          `json:"title"`
	Keyword     string          `json:"keyword,omitempty"`
	SearchURL   string          `json:"search_url,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Products    []indexedRecord `json:"products"`
}

// SaveJSON writes an indented JSON export of records to filepath.
func SaveJSON(records []models.ProductRecord, meta Meta, filepath string) error {
	export := jsonExport{
		Title:       meta.Title,
		Keyword:     meta.Keyword,
		SearchURL:   meta.SearchURL,
		GeneratedAt: meta.GeneratedAt,
		Products:    make([]indexedRecord, len(records)),
	}
	for i, r := range records {
		export.Products[i] = indexedRecord{Index: i + 1, ProductRecord: r}
	}

	content, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
