package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"statcalc/adapters/datasource"
	domainStats "statcalc/domain/stats"
	"statcalc/internal/container"
	"statcalc/internal/engine"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type summarySource struct {
	name string
	raw  string
	req  *datasource.Request
}

type summaryResult struct {
	Source  string         `json:"source"`
	Summary engine.Summary `json:"summary"`
}

func newSummaryCmd() *cobra.Command {
	var files []string
	var src datasource.Request
	var modeOrder string
	var concurrency int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary [data...]",
		Short: "Compute every descriptive statistic at once",
		Long: `Compute mean, median, mode and standard deviation for one or more inputs.

Inline data and every --file are summarized independently; files are read
concurrently. --column, --sheet and --json-path apply to every file.

Examples:
  statcalc summary 1, 2, 2, 3
  statcalc summary --file enero.csv --file febrero.csv --column ventas`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(modeOrder)
			if err != nil {
				return err
			}

			var sources []summarySource
			if len(args) > 0 {
				sources = append(sources, summarySource{name: "datos", raw: strings.Join(args, " ")})
			}
			for _, f := range files {
				req := src
				req.Path = f
				sources = append(sources, summarySource{name: filepath.Base(f), req: &req})
			}
			if len(sources) == 0 {
				raw, err := readData(cmd, datasource.Request{}, nil, c.Logger)
				if err != nil {
					return err
				}
				sources = append(sources, summarySource{name: "stdin", raw: raw})
			}

			results, err := summarize(cmd.Context(), c, sources, concurrency)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			printSummaries(cmd.OutOrStdout(), c, results)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "File to summarize (repeatable)")
	cmd.Flags().StringVar(&src.Column, "column", "", "Column header or 1-based index (tabular files)")
	cmd.Flags().StringVar(&src.Sheet, "sheet", "", "Worksheet name (.xlsx, default first sheet)")
	cmd.Flags().StringVar(&src.JSONPath, "json-path", "", "gjson path to the numbers (.json files)")
	cmd.Flags().StringVar(&modeOrder, "mode-order", "", "Order of tied modes: ascending|first-seen")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Files read in parallel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summaries as JSON")
	return cmd
}

// summarize loads and summarizes every source, at most limit at a time.
// Results keep the order of sources; the first failure cancels the rest.
func summarize(ctx context.Context, c *container.Container, sources []summarySource, limit int) ([]summaryResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if limit < 1 {
		limit = 1
	}
	results := make([]summaryResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range sources {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw := s.raw
			if s.req != nil {
				numbers, err := datasource.Load(*s.req, c.Logger)
				if err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
				raw = engine.JoinNumbers(numbers)
			}
			results[i] = summaryResult{Source: s.name, Summary: c.Engine.Summarize(raw)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printSummaries(w io.Writer, c *container.Container, results []summaryResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (n=%d) ==\n", r.Source, len(r.Summary.Numbers))
		for _, kind := range domainStats.DescriptiveKinds() {
			def, err := c.Engine.Definition(kind)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, resultOrDash(def, r.Summary.Results[kind], c.Calculators.Decimals))
		}
	}
}
