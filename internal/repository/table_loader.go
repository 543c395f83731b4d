package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sales-reconciliation-backend/internal/models"
)

// ErrUnsupportedFormat is returned for uploads that are not CSV or
// spreadsheet files.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// TableLoader turns an uploaded export into an in-memory table. The
// reconciliation layer depends on this interface, never on a file format
// or the filesystem.
type TableLoader interface {
	Load(r io.Reader, filename string) (*models.Table, error)
}

// FileTableLoader parses .csv uploads with encoding/csv and .xlsx/.xls
// uploads with excelize, normalizing both into a models.Table.
type FileTableLoader struct{}

func NewFileTableLoader() *FileTableLoader {
	return &FileTableLoader{}
}

func (l *FileTableLoader) Load(r io.Reader, filename string) (*models.Table, error) {
	var records [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx", ".xls":
		records, err = readSpreadsheet(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s has no header row", filename)
	}

	headers := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if strings.Join(rec, "") == "" {
			continue
		}
		rows = append(rows, padRow(rec, len(headers)))
	}
	return &models.Table{Headers: headers, Rows: rows}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	return records, nil
}

func readSpreadsheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet: %w", err)
	}
	return rows, nil
}

// padRow pads or truncates a record to the header width so downstream
// indexing never goes out of range on ragged rows.
func padRow(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	row := make([]string, width)
	copy(row, rec)
	return row
}
