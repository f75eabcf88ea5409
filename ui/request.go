package ui

import (
	"bytes"
	stderrors "errors"

	"statcalc/adapters/datasource"
	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
	"statcalc/internal/engine"
	"statcalc/internal/errors"

	"github.com/tidwall/gjson"
)

// parseInput decodes a statistic request body. "data" is either raw
// calculator text or a JSON array of numbers; "document" plus "path" extracts
// numbers from an embedded JSON document instead. "population", "margin" and
// "confidence" (a z-score) may be strings or numbers, and "confidence_percent"
// resolves a z-score from a confidence level.
func parseInput(body []byte) (engine.Input, error) {
	var in engine.Input
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}
	if !gjson.ValidBytes(body) {
		return in, errors.InvalidInput("request body must be a JSON object")
	}

	if path := gjson.GetBytes(body, "path"); path.Exists() {
		doc := gjson.GetBytes(body, "document")
		if !doc.Exists() {
			return in, errors.InvalidInput("path requires a document")
		}
		numbers, err := datasource.ExtractNumbers([]byte(doc.Raw), path.String())
		if err != nil {
			return in, err
		}
		in.Data = engine.JoinNumbers(numbers)
	} else if data := gjson.GetBytes(body, "data"); data.Exists() {
		if data.Type == gjson.String {
			in.Data = data.String()
		} else {
			numbers, err := datasource.ExtractNumbers(body, "data")
			if err != nil && !stderrors.Is(err, core.ErrNoNumericData) {
				return in, err
			}
			in.Data = engine.JoinNumbers(numbers)
		}
	}

	in.Population = scalarField(body, "population")
	in.Margin = scalarField(body, "margin")
	in.Confidence = scalarField(body, "confidence")

	if pct := gjson.GetBytes(body, "confidence_percent"); pct.Exists() {
		z, err := engine.ZScore(pct.Float())
		if err != nil {
			return in, err
		}
		in.Confidence = engine.FormatNumber(z)
	}
	return in, nil
}

func scalarField(body []byte, name string) string {
	v := gjson.GetBytes(body, name)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// parseCalculatorKind reads {"kind": "mode"}; aliases are accepted.
func parseCalculatorKind(body []byte) (domainStats.Kind, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.InvalidInput("request body must be a JSON object")
	}
	kind := gjson.GetBytes(body, "kind")
	if kind.Type != gjson.String || kind.String() == "" {
		return "", errors.InvalidInput("kind is required")
	}
	return domainStats.ParseKind(kind.String())
}

// parseKeys reads {"keys": "1,2="} or {"keys": ["1", ",", "2", "="]}.
func parseKeys(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.InvalidInput("request body must be a JSON object")
	}
	keys := gjson.GetBytes(body, "keys")
	switch {
	case keys.IsArray():
		var out []string
		keys.ForEach(func(_, k gjson.Result) bool {
			out = append(out, k.String())
			return true
		})
		return out, nil
	case keys.Type == gjson.String:
		var out []string
		for _, r := range keys.String() {
			out = append(out, string(r))
		}
		return out, nil
	}
	return nil, errors.InvalidInput(`"keys" must be a string or an array of keys`)
}

// parseParams reads {"margin": "3", "confidence": "2.576"} in document order.
func parseParams(body []byte) ([][2]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.InvalidInput("request body must be a JSON object")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.InvalidInput("request body must be a JSON object")
	}
	var params [][2]string
	root.ForEach(func(field, value gjson.Result) bool {
		params = append(params, [2]string{field.String(), value.String()})
		return true
	})
	if len(params) == 0 {
		return nil, errors.InvalidInput("no parameters given")
	}
	return params, nil
}
