package datasource

import (
	"statcalc/internal"
)

// Request names a file and where in it the numbers live.
type Request struct {
	Path     string
	Column   string // header name or 1-based index for tabular files
	Sheet    string // worksheet for .xlsx files
	JSONPath string // gjson path for .json files
}

// Load reads the numbers a request points at, choosing the decoder from the
// file extension.
func Load(req Request, logger *internal.Logger) ([]float64, error) {
	fileType, err := DetectFileType(req.Path)
	if err != nil {
		return nil, err
	}
	if fileType == FileTypeJSON {
		return ReadJSONFile(req.Path, req.JSONPath)
	}

	reader, err := NewColumnReader(req.Path, logger)
	if err != nil {
		return nil, err
	}
	return reader.WithSheet(req.Sheet).ReadNumbers(req.Column)
}
