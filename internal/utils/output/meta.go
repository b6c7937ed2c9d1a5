package output

import (
	"fmt"
	"time"
)

// TimestampLayout is how generation times are printed inside exported files
const TimestampLayout = "2006-01-02 15:04:05"

// Meta labels an export
type Meta struct {
	// Title is the banner text, e.g. "Amazon India Search Results - 'mouse'"
	Title string
	// Sheet names the worksheet; defaults to "Products"
	Sheet       string
	Keyword     string
	SearchURL   string
	GeneratedAt time.Time
}

// NewMeta builds the labels for a search on the named storefront
func NewMeta(brand, storefront, keyword, searchURL string, at time.Time) Meta {
	return Meta{
		Title:       fmt.Sprintf("%s Search Results - '%s'", storefront, keyword),
		Sheet:       brand + " Products",
		Keyword:     keyword,
		SearchURL:   searchURL,
		GeneratedAt: at,
	}
}

func (m Meta) sheetName() string {
	if m.Sheet == "" {
		return "Products"
	}
	// worksheet names are limited to 31 characters
	if r := []rune(m.Sheet); len(r) > 31 {
		return string(r[:31])
	}
	return m.Sheet
}
