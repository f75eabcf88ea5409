package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"statcalc/adapters/datasource"
	domainStats "statcalc/domain/stats"
	"statcalc/internal"
	"statcalc/internal/calculator"
	"statcalc/internal/config"
	"statcalc/internal/container"
	"statcalc/internal/engine"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "statcalc",
		Short:         "Descriptive statistics and sample-size calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newComputeCmd(),
		newSampleCmd(),
		newSummaryCmd(),
		newFormulasCmd(),
		newKeypadCmd(),
	)
	return rootCmd
}

// loadContainer reads .env and the environment, applying a mode-order
// override when one is given on the command line.
func loadContainer(modeOrder string) (*container.Container, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if modeOrder != "" {
		order, err := engine.ParseModeOrder(modeOrder)
		if err != nil {
			return nil, err
		}
		cfg.Calculators.ModeOrder = order
	}
	return container.New(cfg)
}

func newComputeCmd() *cobra.Command {
	var src datasource.Request
	var modeOrder string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compute [kind] [data...]",
		Short: "Compute one descriptive statistic over a list of numbers",
		Long: `Compute the mean, median, mode or standard deviation of a list of numbers.

Numbers come from the arguments, a file (--file) or standard input. Commas and
spaces both separate values; tokens that are not numbers are ignored.

Examples:
  statcalc compute mean 1, 2, 3, 4
  statcalc compute mode --mode-order first-seen 3 1 3 1
  statcalc compute stddev --file datos.xlsx --column peso
  statcalc compute median --file datos.json --json-path rows.#.score`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(modeOrder)
			if err != nil {
				return err
			}
			kind, err := domainStats.ParseKind(args[0])
			if err != nil {
				return err
			}
			if !kind.IsDescriptive() {
				return fmt.Errorf("%s takes parameters, not data: use \"statcalc sample\"", kind)
			}

			raw, err := readData(cmd, src, args[1:], c.Logger)
			if err != nil {
				return err
			}
			return printComputation(cmd.OutOrStdout(), c, kind, engine.Input{Data: raw}, asJSON)
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVar(&modeOrder, "mode-order", "", "Order of tied modes: ascending|first-seen")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var population, margin, confidence float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sample [finite|infinite]",
		Short: "Compute the sample size for a finite or infinite population",
		Long: `Compute the sample size needed to estimate a proportion (p = q = 0.5).

Margin of error and confidence level default to the configured values
(DEFAULT_MARGIN_PERCENT, DEFAULT_CONFIDENCE). Confidence levels other than
90, 95 and 99 are resolved through the normal distribution.

Examples:
  statcalc sample finite --population 1000
  statcalc sample infinite --margin 3 --confidence 99`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer("")
			if err != nil {
				return err
			}
			kind, err := domainStats.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind.IsDescriptive() {
				return fmt.Errorf("%s needs data: use \"statcalc compute %s\"", kind, args[0])
			}
			if kind == domainStats.KindFiniteSampleSize && !cmd.Flags().Changed("population") {
				return fmt.Errorf("--population is required for a finite population")
			}

			if !cmd.Flags().Changed("margin") {
				margin = c.Config.Calculators.DefaultMargin
			}
			if !cmd.Flags().Changed("confidence") {
				confidence = c.Config.Calculators.DefaultConfidence
			}
			z, err := engine.ZScore(confidence)
			if err != nil {
				return err
			}

			in := engine.Input{
				Margin:     engine.FormatNumber(margin),
				Confidence: engine.FormatNumber(z),
			}
			if kind == domainStats.KindFiniteSampleSize {
				in.Population = engine.FormatNumber(population)
			}
			return printComputation(cmd.OutOrStdout(), c, kind, in, asJSON)
		},
	}

	cmd.Flags().Float64Var(&population, "population", 0, "Population size N (finite only)")
	cmd.Flags().Float64Var(&margin, "margin", engine.DefaultMarginPercent, "Margin of error in percent")
	cmd.Flags().Float64Var(&confidence, "confidence", engine.DefaultConfidencePercent, "Confidence level in percent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newFormulasCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formulas",
		Short: "Print the formulas reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), engine.Reference())
			}
			_, err := io.WriteString(cmd.OutOrStdout(), engine.ReferenceMarkdown())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the formulas as JSON")
	return cmd
}

func addSourceFlags(cmd *cobra.Command, src *datasource.Request) {
	cmd.Flags().StringVar(&src.Path, "file", "", "Read numbers from a .csv, .tsv, .xlsx or .json file")
	cmd.Flags().StringVar(&src.Column, "column", "", "Column header or 1-based index (tabular files)")
	cmd.Flags().StringVar(&src.Sheet, "sheet", "", "Worksheet name (.xlsx, default first sheet)")
	cmd.Flags().StringVar(&src.JSONPath, "json-path", "", "gjson path to the numbers (.json files)")
}

// readData returns raw calculator input from a file, the arguments or stdin,
// in that order of preference.
func readData(cmd *cobra.Command, src datasource.Request, args []string, logger *internal.Logger) (string, error) {
	if src.Path != "" {
		numbers, err := datasource.Load(src, logger)
		if err != nil {
			return "", err
		}
		return engine.JoinNumbers(numbers), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}

type computation struct {
	Kind      domainStats.Kind   `json:"kind"`
	Input     engine.Input       `json:"input"`
	Result    domainStats.Result `json:"result"`
	Formatted string             `json:"formatted"`
	Formula   string             `json:"formula"`
}

func printComputation(w io.Writer, c *container.Container, kind domainStats.Kind, in engine.Input, asJSON bool) error {
	def, err := c.Engine.Definition(kind)
	if err != nil {
		return err
	}
	result, err := c.Engine.Compute(kind, in)
	if err != nil {
		return err
	}
	formula, err := c.Engine.Formula(kind, in)
	if err != nil {
		return err
	}

	decimals := c.Calculators.Decimals
	if asJSON {
		return writeJSON(w, computation{
			Kind:      kind,
			Input:     in,
			Result:    result,
			Formatted: result.Format(decimals),
			Formula:   formula.String(),
		})
	}

	fmt.Fprintln(w, resultOrDash(def, result, decimals))
	fmt.Fprintln(w, formula.String())
	return nil
}

func resultOrDash(def engine.Definition, result domainStats.Result, decimals int) string {
	if line := calculator.ResultLine(def, result, decimals); line != "" {
		return line
	}
	return def.ResultLabel + ": -"
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
