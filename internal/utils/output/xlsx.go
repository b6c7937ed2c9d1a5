package output

import (
	"fmt"

	"github.com/law-makers/shelf/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Sheet layout
const (
	titleRow     = 1
	timestampRow = 2
	headerRow    = 4
	firstDataRow = 5
	lastColumn   = "F"
	urlColumn    = 6
)

// Columns is the header row shared by every tabular format
var Columns = []string{"#", "Product Name", "Price", "Rating", "Reviews", "Product URL"}

var columnWidths = map[string]float64{
	"A": 5,
	"B": 60,
	"C": 15,
	"D": 10,
	"E": 15,
	"F": 80,
}

type workbookStyles struct {
	title     int
	timestamp int
	header    int
	link      int
}

// SaveXLSX writes records to a formatted workbook at path.
// The header row stays frozen so it remains visible while scrolling.
func SaveXLSX(records []models.ProductRecord, meta Meta, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := meta.sheetName()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := writeBanner(f, sheet, titleRow, meta.Title, styles.title); err != nil {
		return err
	}
	if err := writeBanner(f, sheet, timestampRow, "Scraped on: "+meta.GeneratedAt.Format(TimestampLayout), styles.timestamp); err != nil {
		return err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, cell(1, headerRow), &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(len(Columns), headerRow), styles.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		row := firstDataRow + i
		values := []interface{}{i + 1, r.Title, r.Price, r.Rating, r.ReviewCount, r.URL}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if r.URL == "" || r.URL == models.Sentinel {
			continue
		}
		link := cell(urlColumn, row)
		if err := f.SetCellHyperLink(sheet, link, r.URL, "External"); err != nil {
			return fmt.Errorf("failed to link %s: %w", link, err)
		}
		if err := f.SetCellStyle(sheet, link, link, styles.link); err != nil {
			return fmt.Errorf("failed to style %s: %w", link, err)
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	if err := f.SetRowHeight(sheet, titleRow, 25); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, headerRow, 20); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cell(1, firstDataRow),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: centered,
	})
	if err != nil {
		return s, err
	}
	s.timestamp, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 10},
		Alignment: centered,
	})
	if err != nil {
		return s, err
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: centered,
	})
	if err != nil {
		return s, err
	}
	s.link, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0563C1", Underline: "single"},
	})
	return s, err
}

// writeBanner fills a merged A:F band on row with text
func writeBanner(f *excelize.File, sheet string, row int, text string, style int) error {
	start, end := cell(1, row), fmt.Sprintf("%s%d", lastColumn, row)
	if err := f.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", start, end, err)
	}
	if err := f.SetCellValue(sheet, start, text); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
