package engine

import (
	"fmt"

	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
)

// Field names the input a calculator's keypad writes into.
type Field string

const (
	FieldData       Field = "data"       // delimited number list
	FieldPopulation Field = "population" // population size N
	FieldMargin     Field = "margin"     // margin of error in percent
	FieldConfidence Field = "confidence" // z-score
)

// Input carries the raw text of every calculator field. Only the fields a
// statistic needs are read; the rest are ignored.
type Input struct {
	Data       string `json:"data,omitempty"`
	Population string `json:"population,omitempty"`
	Margin     string `json:"margin,omitempty"`
	Confidence string `json:"confidence,omitempty"` // z-score, e.g. "1.965"
}

// Get returns the raw value of a field.
func (in Input) Get(f Field) string {
	switch f {
	case FieldPopulation:
		return in.Population
	case FieldMargin:
		return in.Margin
	case FieldConfidence:
		return in.Confidence
	default:
		return in.Data
	}
}

// With returns a copy of in with field f set to value.
func (in Input) With(f Field, value string) Input {
	switch f {
	case FieldPopulation:
		in.Population = value
	case FieldMargin:
		in.Margin = value
	case FieldConfidence:
		in.Confidence = value
	default:
		in.Data = value
	}
	return in
}

// Definition describes one calculator: what it computes, how its formula is
// rendered and which keys its keypad offers.
type Definition struct {
	Kind        domainStats.Kind `json:"kind"`
	Label       string           `json:"label"`
	Title       string           `json:"title"`
	Legend      string           `json:"legend"`
	Placeholder string           `json:"placeholder"`
	ResultLabel string           `json:"result_label"`
	ResultUnit  string           `json:"result_unit,omitempty"`
	Entry       Field            `json:"entry"`
	Keys        []string         `json:"keys"`

	// Extra keys are accepted from typed input but not drawn on the keypad.
	Extra []string `json:"extra,omitempty"`

	// Pickers lists the fields chosen from fixed options instead of typed.
	Pickers []Field `json:"pickers,omitempty"`

	compute func(Input) domainStats.Result
	formula func(Input) Formula
}

// Accepts reports whether key can be appended to this calculator's entry.
func (d Definition) Accepts(key string) bool {
	for _, k := range d.Keys {
		if k == key && k != KeyClear && k != KeyEquals {
			return true
		}
	}
	for _, k := range d.Extra {
		if k == key {
			return true
		}
	}
	return false
}

// Keypad control keys.
const (
	KeyClear  = "C"
	KeyEquals = "="
)

var digitKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

func keypad(extra ...string) []string {
	keys := append([]string{}, digitKeys...)
	keys = append(keys, extra...)
	return append(keys, KeyClear, KeyEquals)
}

// Options tunes engine behavior.
type Options struct {
	ModeOrder ModeOrder
}

// Engine dispatches computations and formulas to the registered calculators.
type Engine struct {
	opts Options
	defs map[domainStats.Kind]Definition
}

// New creates an engine with every calculator registered.
func New(opts Options) *Engine {
	if opts.ModeOrder == "" {
		opts.ModeOrder = ModeOrderAscending
	}
	e := &Engine{opts: opts, defs: make(map[domainStats.Kind]Definition)}
	for _, d := range e.definitions() {
		e.defs[d.Kind] = d
	}
	return e
}

// NewDefault creates an engine with default options.
func NewDefault() *Engine {
	return New(Options{})
}

// ModeOrder returns the configured ordering for tied modes.
func (e *Engine) ModeOrder() ModeOrder { return e.opts.ModeOrder }

// Definition looks up a calculator.
func (e *Engine) Definition(kind domainStats.Kind) (Definition, error) {
	d, ok := e.defs[kind]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", core.ErrUnknownStatistic, kind)
	}
	return d, nil
}

// Definitions returns every calculator in drawer order.
func (e *Engine) Definitions() []Definition {
	out := make([]Definition, 0, len(e.defs))
	for _, k := range domainStats.AllKinds() {
		out = append(out, e.defs[k])
	}
	return out
}

// Compute runs one statistic over in. The only error is an unknown kind;
// unusable input produces an Unavailable result.
func (e *Engine) Compute(kind domainStats.Kind, in Input) (domainStats.Result, error) {
	d, err := e.Definition(kind)
	if err != nil {
		return domainStats.Result{}, err
	}
	return d.compute(in), nil
}

// ComputeNumbers runs a descriptive statistic over an already parsed list.
func (e *Engine) ComputeNumbers(kind domainStats.Kind, numbers []float64) (domainStats.Result, error) {
	switch kind {
	case domainStats.KindMean:
		return Mean(numbers), nil
	case domainStats.KindMedian:
		return Median(numbers), nil
	case domainStats.KindMode:
		return ModeWithOrder(numbers, e.opts.ModeOrder), nil
	case domainStats.KindStandardDeviation:
		return StandardDeviation(numbers), nil
	}
	return domainStats.Result{}, fmt.Errorf("%w: %q takes scalar parameters, not a list", core.ErrUnknownStatistic, kind)
}

// Formula renders the live formula for in.
func (e *Engine) Formula(kind domainStats.Kind, in Input) (Formula, error) {
	d, err := e.Definition(kind)
	if err != nil {
		return Formula{}, err
	}
	return d.formula(in), nil
}

// Summary holds every descriptive statistic over one number list.
type Summary struct {
	Numbers []float64                               `json:"numbers"`
	Results map[domainStats.Kind]domainStats.Result `json:"results"`
}

// Summarize computes all descriptive statistics for raw.
func (e *Engine) Summarize(raw string) Summary {
	numbers := ParseNumbers(raw)
	s := Summary{Numbers: numbers, Results: make(map[domainStats.Kind]domainStats.Result)}
	for _, k := range domainStats.DescriptiveKinds() {
		r, _ := e.ComputeNumbers(k, numbers)
		s.Results[k] = r
	}
	return s
}

func (e *Engine) definitions() []Definition {
	placeholderHint := "Ingrese valores (e.g., %s)"
	return []Definition{
		{
			Kind:        domainStats.KindFiniteSampleSize,
			Label:       "Población Finita",
			Title:       "Calculadora de Tamaño de Muestra Finita",
			Legend:      "Donde: N = población, Z = nivel de confianza, E = margen de error, p = q = 0.5",
			Placeholder: "0",
			ResultLabel: "Tamaño de la muestra",
			ResultUnit:  "personas",
			Entry:       FieldPopulation,
			Keys:        keypad(),
			Pickers:     []Field{FieldMargin, FieldConfidence},
			compute:     computeFinite,
			formula:     finiteSampleSizeFormula,
		},
		{
			Kind:        domainStats.KindInfiniteSampleSize,
			Label:       "Población Infinita",
			Title:       "Calculadora de Tamaño de Muestra Infinita",
			Legend:      "Donde: Z = nivel de confianza, E = margen de error, p = 0.5",
			Placeholder: "Ingrese valor (e.g., 5)",
			ResultLabel: "Tamaño de la muestra",
			ResultUnit:  "personas",
			Entry:       FieldMargin,
			Keys:        keypad("%"),
			Extra:       []string{"."},
			Pickers:     []Field{FieldConfidence},
			compute:     computeInfinite,
			formula:     infiniteSampleSizeFormula,
		},
		{
			Kind:        domainStats.KindMean,
			Label:       "Media",
			Title:       "Calculadora de la Media",
			Legend:      "Donde: x̄ = media, xᵢ = cada valor, n = número de valores",
			Placeholder: fmt.Sprintf(placeholderHint, "1, 2, 3, 4"),
			ResultLabel: "Media",
			Entry:       FieldData,
			Keys:        keypad(","),
			Extra:       []string{".", " "},
			compute:     func(in Input) domainStats.Result { return Mean(ParseNumbers(in.Data)) },
			formula:     meanFormula,
		},
		{
			Kind:        domainStats.KindMode,
			Label:       "Moda",
			Title:       "Calculadora de la Moda",
			Legend:      "Donde: Moda = el valor o valores que aparecen más veces en los datos",
			Placeholder: fmt.Sprintf(placeholderHint, "1, 2, 2, 3"),
			ResultLabel: "Moda",
			Entry:       FieldData,
			Keys:        keypad(","),
			Extra:       []string{".", " "},
			compute:     e.computeMode,
			formula:     modeFormula(e.opts.ModeOrder),
		},
		{
			Kind:        domainStats.KindStandardDeviation,
			Label:       "Desviación Estándar",
			Title:       "Calculadora de Desviación Estándar",
			Legend:      "Donde: s = desviación estándar, xᵢ = cada valor, x̄ = media, n = número de valores",
			Placeholder: fmt.Sprintf(placeholderHint, "1, 2, 3, 4"),
			ResultLabel: "Desviación estándar",
			Entry:       FieldData,
			Keys:        keypad(","),
			Extra:       []string{".", " "},
			compute:     func(in Input) domainStats.Result { return StandardDeviation(ParseNumbers(in.Data)) },
			formula:     standardDeviationFormula,
		},
		{
			Kind:        domainStats.KindMedian,
			Label:       "Mediana",
			Title:       "Calculadora de la Mediana",
			Legend:      "Donde: Mediana = valor central (impar) o promedio de los dos centrales (par), n = número de valores",
			Placeholder: fmt.Sprintf(placeholderHint, "1, 3, 2"),
			ResultLabel: "Mediana",
			Entry:       FieldData,
			Keys:        keypad(","),
			Extra:       []string{".", " "},
			compute:     func(in Input) domainStats.Result { return Median(ParseNumbers(in.Data)) },
			formula:     medianFormula,
		},
	}
}

func (e *Engine) computeMode(in Input) domainStats.Result {
	return ModeWithOrder(ParseNumbers(in.Data), e.opts.ModeOrder)
}

func computeFinite(in Input) domainStats.Result {
	n, okN := ParseScalar(in.Population)
	m, okM := ParseScalar(in.Margin)
	z, okZ := ParseScalar(in.Confidence)
	if !okN || !okM || !okZ {
		return domainStats.Unavailable(domainStats.KindFiniteSampleSize)
	}
	return FiniteSampleSize(n, m, z)
}

func computeInfinite(in Input) domainStats.Result {
	m, okM := ParseScalar(in.Margin)
	z, okZ := ParseScalar(in.Confidence)
	if !okM || !okZ {
		return domainStats.Unavailable(domainStats.KindInfiniteSampleSize)
	}
	return InfiniteSampleSize(m, z)
}
