// Package calculator implements the numeric-entry calculator shared by every
// statistic: a keypad that appends to one input field, optional pickers for
// fixed parameters, "C" to clear and "=" to evaluate. What is computed and how
// the formula reads comes from the engine definition the calculator wraps.
package calculator

import (
	"fmt"
	"strings"
	"sync"

	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
	"statcalc/internal/engine"
	"statcalc/internal/picker"
)

// Calculator holds the state of one calculator screen. It is safe for
// concurrent use.
type Calculator struct {
	mu       sync.Mutex
	id       core.SessionID
	def      engine.Definition
	eng      *engine.Engine
	input    engine.Input
	result   *domainStats.Result
	pickers  map[engine.Field]picker.Surface
	decimals int
}

// Options configures a new calculator.
type Options struct {
	Surface       picker.Kind
	Decimals      int
	DefaultMargin string // picker value, percent
	DefaultZ      string // picker value, z-score
}

// DefaultOptions mirrors the calculators' initial picker positions: 5% margin
// of error at 95% confidence.
func DefaultOptions() Options {
	return Options{
		Surface:       picker.KindInline,
		Decimals:      2,
		DefaultMargin: engine.FormatNumber(engine.DefaultMarginPercent),
		DefaultZ:      "1.965",
	}
}

// New creates a calculator for kind.
func New(eng *engine.Engine, kind domainStats.Kind, opts Options) (*Calculator, error) {
	def, err := eng.Definition(kind)
	if err != nil {
		return nil, err
	}
	if opts.Decimals < 0 {
		opts.Decimals = 0
	}

	c := &Calculator{
		id:       core.NewSessionID(),
		def:      def,
		eng:      eng,
		pickers:  make(map[engine.Field]picker.Surface),
		decimals: opts.Decimals,
	}

	for _, field := range def.Pickers {
		var surface picker.Surface
		switch field {
		case engine.FieldMargin:
			surface, err = picker.New(opts.Surface, picker.MarginOptions(), opts.DefaultMargin)
		case engine.FieldConfidence:
			surface, err = picker.New(opts.Surface, picker.ConfidenceOptions(), opts.DefaultZ)
		default:
			err = fmt.Errorf("no picker options for field %s", field)
		}
		if err != nil {
			return nil, fmt.Errorf("%s picker: %w", field, err)
		}
		c.pickers[field] = surface
		c.input = c.input.With(field, surface.Selected().Value)
	}

	return c, nil
}

// ID returns the calculator's session identifier.
func (c *Calculator) ID() core.SessionID { return c.id }

// Kind returns the statistic this calculator computes.
func (c *Calculator) Kind() domainStats.Kind { return c.def.Kind }

// Press handles one keypad key.
func (c *Calculator) Press(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.press(key)
}

// Type presses every character of keys in order, stopping at the first
// rejected key.
func (c *Calculator) Type(keys string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range keys {
		if err := c.press(string(r)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Calculator) press(key string) error {
	switch key {
	case engine.KeyClear:
		c.clear()
		return nil
	case engine.KeyEquals:
		c.evaluate()
		return nil
	}
	if !c.def.Accepts(key) {
		return core.NewKeyError(key, c.def.Kind.String())
	}
	c.input = c.input.With(c.def.Entry, c.input.Get(c.def.Entry)+key)
	return nil
}

// Clear resets the entry and the last result. Picker selections are kept.
func (c *Calculator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

func (c *Calculator) clear() {
	c.input = c.input.With(c.def.Entry, "")
	c.result = nil
}

// Evaluate computes the statistic over the current input and stores it.
func (c *Calculator) Evaluate() domainStats.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluate()
}

func (c *Calculator) evaluate() domainStats.Result {
	r, err := c.eng.Compute(c.def.Kind, c.input)
	if err != nil {
		// The definition came from the same engine, so the kind is known.
		r = domainStats.Unavailable(c.def.Kind)
	}
	c.result = &r
	return r
}

// OpenPicker opens the picker for field.
func (c *Calculator) OpenPicker(field engine.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.picker(field)
	if err != nil {
		return err
	}
	p.Open()
	return nil
}

// Choose selects value on the picker for field. The last result is kept until
// the next evaluation.
func (c *Calculator) Choose(field engine.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.picker(field)
	if err != nil {
		return err
	}
	if err := p.Select(value); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidParam, err)
	}
	c.input = c.input.With(field, p.Selected().Value)
	return nil
}

func (c *Calculator) picker(field engine.Field) (picker.Surface, error) {
	p, ok := c.pickers[field]
	if !ok {
		return nil, core.NewParamError(string(field), "not selectable on "+c.def.Kind.String())
	}
	return p, nil
}

// PickerState is the visible state of one picker.
type PickerState struct {
	Field    engine.Field    `json:"field"`
	Open     bool            `json:"open"`
	Selected picker.Option   `json:"selected"`
	Options  []picker.Option `json:"options"`
}

// State is a snapshot of everything a screen renders.
type State struct {
	ID         core.SessionID      `json:"id"`
	Kind       domainStats.Kind    `json:"kind"`
	Title      string              `json:"title"`
	Entry      engine.Field        `json:"entry"`
	Display    string              `json:"display"`
	Input      engine.Input        `json:"input"`
	Formula    engine.Formula      `json:"formula"`
	FormulaTxt string              `json:"formula_text"`
	Legend     string              `json:"legend"`
	Keys       []string            `json:"keys"`
	Pickers    []PickerState       `json:"pickers,omitempty"`
	Result     *domainStats.Result `json:"result,omitempty"`
	ResultText string              `json:"result_text,omitempty"`
}

// Snapshot returns the current state.
func (c *Calculator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	formula, _ := c.eng.Formula(c.def.Kind, c.input)
	display := c.input.Get(c.def.Entry)
	if display == "" {
		display = c.def.Placeholder
	}

	s := State{
		ID:         c.id,
		Kind:       c.def.Kind,
		Title:      c.def.Title,
		Entry:      c.def.Entry,
		Display:    display,
		Input:      c.input,
		Formula:    formula,
		FormulaTxt: formula.String(),
		Legend:     c.def.Legend,
		Keys:       append([]string(nil), c.def.Keys...),
	}
	for _, field := range c.def.Pickers {
		p := c.pickers[field]
		s.Pickers = append(s.Pickers, PickerState{
			Field:    field,
			Open:     p.IsOpen(),
			Selected: p.Selected(),
			Options:  p.Options(),
		})
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
		s.ResultText = ResultLine(c.def, r, c.decimals)
	}
	return s
}

// ResultLine renders a result the way the screens print it, e.g.
// "Tamaño de la muestra: 279 personas". Unavailable results render empty.
func ResultLine(def engine.Definition, r domainStats.Result, decimals int) string {
	if !r.Available() {
		return ""
	}
	parts := []string{r.Format(decimals)}
	if def.ResultUnit != "" {
		parts = append(parts, def.ResultUnit)
	}
	return def.ResultLabel + ": " + strings.Join(parts, " ")
}
