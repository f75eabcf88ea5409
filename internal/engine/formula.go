package engine

import (
	"strconv"
	"strings"
)

// Formula is the live formula shown above a calculator's keypad. Numerator and
// Denominator are kept apart so a renderer can stack them as a fraction.
type Formula struct {
	Lead        string `json:"lead"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator,omitempty"`
	Radical     bool   `json:"radical,omitempty"`
}

// String renders the formula on one line, e.g. "s = √[(5.00) / (3)]".
func (f Formula) String() string {
	body := f.Numerator
	if f.Denominator != "" {
		body = group(f.Numerator) + " / " + group(f.Denominator)
	}
	if f.Radical {
		body = "√[" + body + "]"
	}
	return f.Lead + body
}

func group(part string) string {
	if strings.ContainsAny(part, " ") {
		return "(" + part + ")"
	}
	return part
}

func or(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func meanFormula(in Input) Formula {
	numbers := ParseNumbers(in.Data)
	sum, ok := Sum(numbers)
	if !ok {
		return Formula{Lead: "x̄ = ", Numerator: "∑ xᵢ", Denominator: "n"}
	}
	return Formula{Lead: "x̄ = ", Numerator: FormatNumber(sum), Denominator: strconv.Itoa(len(numbers))}
}

func standardDeviationFormula(in Input) Formula {
	numbers := ParseNumbers(in.Data)
	ss, ok := SumSquaredDeviations(numbers)
	if !ok {
		return Formula{Lead: "s = ", Numerator: "∑ (xᵢ - x̄)²", Denominator: "n - 1", Radical: true}
	}
	return Formula{
		Lead:        "s = ",
		Numerator:   strconv.FormatFloat(ss, 'f', 2, 64),
		Denominator: strconv.Itoa(len(numbers) - 1),
		Radical:     true,
	}
}

func medianFormula(in Input) Formula {
	numbers := ParseNumbers(in.Data)
	if len(numbers) == 0 {
		return Formula{Lead: "Mediana = ", Numerator: "Lista ordenada", Denominator: "n"}
	}
	return Formula{
		Lead:        "Mediana = ",
		Numerator:   JoinNumbers(SortedCopy(numbers)),
		Denominator: strconv.Itoa(len(numbers)),
	}
}

func modeFormula(order ModeOrder) func(Input) Formula {
	return func(in Input) Formula {
		numbers := ParseNumbers(in.Data)
		if len(numbers) == 0 {
			return Formula{Lead: "Moda = ", Numerator: "Valor(es) con mayor frecuencia"}
		}
		table := NewFrequencyTable(numbers)
		if !table.HasMode() {
			return Formula{Lead: "Moda = ", Numerator: "No hay moda aún"}
		}
		return Formula{Lead: "Moda = ", Numerator: JoinNumbers(table.Modes(order))}
	}
}

func finiteSampleSizeFormula(in Input) Formula {
	n := or(in.Population, "N")
	z := or(in.Confidence, "Z")
	e := "E"
	if strings.TrimSpace(in.Margin) != "" {
		e = strings.TrimSuffix(in.Margin, "%") + "%"
	}
	return Formula{
		Lead:        "n = ",
		Numerator:   n + " × " + z + "² × 0.25",
		Denominator: e + "² × (" + n + " - 1) + " + z + "² × 0.25",
	}
}

func infiniteSampleSizeFormula(in Input) Formula {
	return Formula{
		Lead:        "n = ",
		Numerator:   or(in.Confidence, "Z") + "² × 0.5 × (1 - 0.5)",
		Denominator: or(in.Margin, "E") + "²",
	}
}
