package datasource

import (
	"fmt"
	"os"

	"statcalc/domain/core"
	"statcalc/internal/engine"

	"github.com/tidwall/gjson"
)

// ExtractNumbers collects the numbers found at path in a JSON document, using
// gjson path syntax ("data.values", "rows.#.score"). An empty path reads the
// whole document. Arrays contribute every numeric element, strings are parsed
// as calculator input and plain numbers contribute themselves.
func ExtractNumbers(body []byte, path string) ([]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON document", core.ErrNoNumericData)
	}

	var result gjson.Result
	if path == "" {
		result = gjson.ParseBytes(body)
	} else {
		result = gjson.GetBytes(body, path)
		if !result.Exists() {
			return nil, fmt.Errorf("%w: %q", core.ErrPathNotFound, path)
		}
	}

	numbers := collectNumbers(result, nil)
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: nothing numeric at %q", core.ErrNoNumericData, path)
	}
	return numbers, nil
}

// ReadJSONFile extracts numbers at path from a JSON file.
func ReadJSONFile(filePath, path string) ([]float64, error) {
	body, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ExtractNumbers(body, path)
}

func collectNumbers(result gjson.Result, numbers []float64) []float64 {
	switch {
	case result.IsArray():
		result.ForEach(func(_, value gjson.Result) bool {
			numbers = collectNumbers(value, numbers)
			return true
		})
	case result.Type == gjson.Number:
		numbers = append(numbers, result.Float())
	case result.Type == gjson.String:
		numbers = append(numbers, engine.ParseNumbers(result.String())...)
	}
	return numbers
}
