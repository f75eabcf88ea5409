package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	domainStats "statcalc/domain/stats"
	"statcalc/internal/calculator"
	"statcalc/internal/engine"

	"github.com/spf13/cobra"
)

func newKeypadCmd() *cobra.Command {
	var modeOrder string

	cmd := &cobra.Command{
		Use:   "keypad [kind]",
		Short: "Drive a calculator keypad from standard input",
		Long: `Drive one calculator the way its screen is used: every line of standard
input is a sequence of key presses, and the display, live formula and result
are printed after each line. "C" clears and "=" evaluates.

A line of the form field=value selects a picker option instead, for example
margin=3 or confidence=2.576.

Example:
  printf '1000\nmargin=3\n=\n' | statcalc keypad finite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(modeOrder)
			if err != nil {
				return err
			}
			kind, err := domainStats.ParseKind(args[0])
			if err != nil {
				return err
			}
			calc, err := calculator.New(c.Engine, kind, c.Calculators)
			if err != nil {
				return err
			}
			return runKeypad(cmd.InOrStdin(), cmd.OutOrStdout(), calc)
		},
	}

	cmd.Flags().StringVar(&modeOrder, "mode-order", "", "Order of tied modes: ascending|first-seen")
	return cmd
}

func runKeypad(in io.Reader, out io.Writer, calc *calculator.Calculator) error {
	state := calc.Snapshot()
	fmt.Fprintln(out, state.Title)
	printKeypadState(out, state)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := applyKeypadLine(calc, line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		printKeypadState(out, calc.Snapshot())
	}
	return scanner.Err()
}

func applyKeypadLine(calc *calculator.Calculator, line string) error {
	if field, value, ok := strings.Cut(line, "="); ok && isFieldName(field) {
		f := engine.Field(field)
		if err := calc.OpenPicker(f); err != nil {
			return err
		}
		return calc.Choose(f, strings.TrimSpace(value))
	}
	return calc.Type(line)
}

func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func printKeypadState(out io.Writer, state calculator.State) {
	fmt.Fprintf(out, "[%s] %s\n", state.Display, state.FormulaTxt)
	for _, p := range state.Pickers {
		fmt.Fprintf(out, "  %s: %s\n", p.Field, p.Selected.Label)
	}
	if state.ResultText != "" {
		fmt.Fprintln(out, state.ResultText)
	}
}
