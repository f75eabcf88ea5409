// Package picker models the fixed-option selectors used by the sample-size
// calculators. A Surface is chosen once at composition time: Inline surfaces
// accept a selection at any moment, Modal surfaces must be opened first and
// close themselves after a choice.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"statcalc/internal/engine"
)

// Kind selects a Surface implementation.
type Kind string

const (
	KindInline Kind = "inline"
	KindModal  Kind = "modal"
)

// ParseKind validates a surface name. The empty string selects inline.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindInline:
		return KindInline, nil
	case KindModal:
		return KindModal, nil
	}
	return "", fmt.Errorf("unknown picker surface %q (want %s or %s)", s, KindInline, KindModal)
}

// Option is one selectable value.
type Option struct {
	Label string `json:"label"`
	Short string `json:"short"` // collapsed button text
	Value string `json:"value"`
}

// Surface is the capability a calculator needs from a selector.
type Surface interface {
	Options() []Option
	Selected() Option
	IsOpen() bool
	Open()
	Close()
	Select(value string) error
}

// ErrClosed is returned when a modal surface receives a selection while closed.
var ErrClosed = errors.New("picker is closed")

// New builds a surface of the given kind over options, preselecting value.
func New(kind Kind, options []Option, value string) (Surface, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("picker needs at least one option")
	}
	base := list{options: options}
	if err := base.choose(value); err != nil {
		return nil, err
	}
	switch kind {
	case KindModal:
		return &Modal{list: base}, nil
	case KindInline, "":
		return &Inline{list: base}, nil
	}
	return nil, fmt.Errorf("unknown picker surface %q", kind)
}

type list struct {
	options  []Option
	selected int
}

func (l *list) Options() []Option {
	out := make([]Option, len(l.options))
	copy(out, l.options)
	return out
}

func (l *list) Selected() Option { return l.options[l.selected] }

func (l *list) choose(value string) error {
	for i, o := range l.options {
		if o.Value == value {
			l.selected = i
			return nil
		}
	}
	return fmt.Errorf("%q is not one of the picker options", value)
}

// Inline is always open; selection applies immediately.
type Inline struct {
	list
}

func (p *Inline) IsOpen() bool              { return true }
func (p *Inline) Open()                     {}
func (p *Inline) Close()                    {}
func (p *Inline) Select(value string) error { return p.choose(value) }

// Modal shows only the selected option until opened, and closes after a choice.
type Modal struct {
	list
	open bool
}

func (p *Modal) IsOpen() bool { return p.open }
func (p *Modal) Open()        { p.open = true }
func (p *Modal) Close()       { p.open = false }

func (p *Modal) Select(value string) error {
	if !p.open {
		return ErrClosed
	}
	if err := p.choose(value); err != nil {
		return err
	}
	p.open = false
	return nil
}

// MarginOptions lists the margin-of-error choices (value in percent).
func MarginOptions() []Option {
	margins := engine.MarginOptions()
	out := make([]Option, len(margins))
	for i, m := range margins {
		v := engine.FormatNumber(m)
		out[i] = Option{Label: v + "%", Short: v + "%", Value: v}
	}
	return out
}

// ConfidenceOptions lists the confidence-level choices (value is the z-score).
func ConfidenceOptions() []Option {
	levels := engine.ConfidenceLevels()
	out := make([]Option, len(levels))
	for i, l := range levels {
		out[i] = Option{Label: l.Label(), Short: l.ShortLabel(), Value: engine.FormatNumber(l.Z)}
	}
	return out
}
