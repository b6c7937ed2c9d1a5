package output

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/law-makers/shelf/pkg/models"
)

// SaveCSV writes records with the same columns as the workbook. Returns an error on failure.
func SaveCSV(records []models.ProductRecord, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Columns); err != nil {
		return err
	}
	for i, r := range records {
		row := []string{strconv.Itoa(i + 1), r.Title, r.Price, r.Rating, r.ReviewCount, r.URL}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
