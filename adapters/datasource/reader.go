// Package datasource reads number lists from spreadsheets, CSV files and JSON
// documents so they can be fed to the statistics engine.
package datasource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"statcalc/domain/core"
	"statcalc/internal"
	"statcalc/internal/engine"

	"github.com/xuri/excelize/v2"
)

// FileType identifies how a tabular file is decoded.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
	FileTypeTSV  FileType = "tsv"
	FileTypeJSON FileType = "json"
)

// DetectFileType maps a file extension to a FileType.
func DetectFileType(filePath string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	case ".csv":
		return FileTypeCSV, nil
	case ".tsv":
		return FileTypeTSV, nil
	case ".json":
		return FileTypeJSON, nil
	}
	return "", fmt.Errorf("%w: %s", core.ErrUnsupportedExt, filepath.Ext(filePath))
}

// ColumnReader reads one column of a spreadsheet or delimited file. The first
// row is treated as a header.
type ColumnReader struct {
	filePath string
	fileType FileType
	sheet    string
	logger   *internal.Logger
}

// NewColumnReader creates a reader for an .xlsx, .csv or .tsv file.
func NewColumnReader(filePath string, logger *internal.Logger) (*ColumnReader, error) {
	fileType, err := DetectFileType(filePath)
	if err != nil {
		return nil, err
	}
	if fileType == FileTypeJSON {
		return nil, fmt.Errorf("%w: use a JSON path for %s", core.ErrUnsupportedExt, filePath)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ColumnReader{filePath: filePath, fileType: fileType, logger: logger.With("DataReader")}, nil
}

// WithSheet selects a worksheet by name. The first sheet is used otherwise.
func (r *ColumnReader) WithSheet(sheet string) *ColumnReader {
	r.sheet = sheet
	return r
}

// ReadNumbers returns the numeric cells of column, which is either a header
// name (case-insensitive) or a 1-based column index. An empty column selects
// the first column. Blank and non-numeric cells are skipped.
func (r *ColumnReader) ReadNumbers(column string) ([]float64, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s needs a header row and at least one data row", core.ErrNoNumericData, r.filePath)
	}

	idx, err := resolveColumn(rows[0], column)
	if err != nil {
		return nil, err
	}

	numbers := make([]float64, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, ok := engine.ParseScalar(cell)
		if !ok {
			skipped++
			continue
		}
		numbers = append(numbers, v)
	}
	if skipped > 0 {
		r.logger.Debug("skipped %d non-numeric cells in column %q", skipped, rows[0][idx])
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: column %q of %s", core.ErrNoNumericData, rows[0][idx], r.filePath)
	}

	r.logger.Info("read %d values from column %q of %s", len(numbers), rows[0][idx], filepath.Base(r.filePath))
	return numbers, nil
}

// ReadRaw returns the column as raw calculator input.
func (r *ColumnReader) ReadRaw(column string) (string, error) {
	numbers, err := r.ReadNumbers(column)
	if err != nil {
		return "", err
	}
	return engine.JoinNumbers(numbers), nil
}

func (r *ColumnReader) readRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(string(r.fileType)), r.filePath)
	}

	start := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case FileTypeXLSX:
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readDelimitedRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s file read in %.2fms (%d rows)",
		strings.ToUpper(string(r.fileType)), float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *ColumnReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", core.ErrNoNumericData, r.filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *ColumnReader) readDelimitedRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(string(r.fileType)), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if r.fileType == FileTypeTSV {
		reader.Comma = '\t'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", strings.ToUpper(string(r.fileType)), err)
	}
	return rows, nil
}

func resolveColumn(header []string, column string) (int, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		if len(header) == 0 {
			return 0, fmt.Errorf("%w: file has no columns", core.ErrColumnNotFound)
		}
		return 0, nil
	}
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(column); err == nil && n >= 1 && n <= len(header) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("%w: %q (have %s)", core.ErrColumnNotFound, column, strings.Join(header, ", "))
}
