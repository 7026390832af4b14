package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/unique-id/internal/application/identifier"
	domain "github.com/mohammadpnp/unique-id/internal/domain/person"
	infrafile "github.com/mohammadpnp/unique-id/internal/infrastructure/file"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/mapping"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/tabular"
)

const maxPrintedFailures = 10

type batchOptions struct {
	input          string
	output         string
	format         string
	mappingFile    string
	saveMapping    string
	autoMap        bool
	showDuplicates bool
	columns        map[domain.LogicalField]*string
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	opts := batchOptions{columns: map[domain.LogicalField]*string{}}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Add a Unique_ID column to every row of a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			source := infrafile.NewLocalSource("")
			input, err := source.ReadTable(cmd.Context(), opts.input)
			if err != nil {
				return err
			}

			fieldMapping, err := opts.mapping(input.Columns)
			if err != nil {
				return err
			}

			if opts.saveMapping != "" {
				if err := mapping.Save(opts.saveMapping, fieldMapping); err != nil {
					return err
				}
			}

			target, err := opts.target(time.Now())
			if err != nil {
				return err
			}

			applyBatch := app.NewApplyBatch(app.BatchConfig{
				Workers:   cfg.BatchWorkers,
				ChunkSize: cfg.BatchChunkSize,
				Logger:    logger,
			})
			out, err := applyBatch.Execute(cmd.Context(), app.ApplyBatchInput{
				Table:   input,
				Mapping: fieldMapping,
			})
			if err != nil {
				return err
			}

			if err := source.WriteTable(cmd.Context(), target, out.Table); err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Wrote %d rows to %s\n", out.Table.Len(), target)
			printStats(stdout, out, opts.showDuplicates)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input CSV or XLSX file")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default: unique_ids_<timestamp> next to the input)")
	flags.StringVar(&opts.format, "format", "", "Output format when --output is not set (csv or xlsx)")
	flags.StringVar(&opts.mappingFile, "mapping-file", "", "TOML file mapping fields to columns")
	flags.StringVar(&opts.saveMapping, "save-mapping", "", "Write the resolved mapping to a TOML file for reuse with --mapping-file")
	flags.BoolVar(&opts.autoMap, "auto-map", false, "Map unassigned fields by matching column headers")
	flags.BoolVar(&opts.showDuplicates, "show-duplicates", false, "List every duplicated identifier and its rows")
	for _, field := range domain.LogicalFields {
		column := new(string)
		opts.columns[field] = column
		flags.StringVar(column, strings.ReplaceAll(string(field), "_", "-"), "", fmt.Sprintf("Column holding the %s", strings.ToLower(field.Label())))
	}
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// mapping layers column flags over the mapping file, then header suggestions
// when --auto-map is set.
func (o batchOptions) mapping(columns []string) (domain.FieldMapping, error) {
	m := domain.FieldMapping{}
	if o.mappingFile != "" {
		loaded, err := mapping.Load(o.mappingFile)
		if err != nil {
			return nil, err
		}
		m = loaded
	}

	flagged := domain.FieldMapping{}
	for field, column := range o.columns {
		if value := strings.TrimSpace(*column); value != "" {
			flagged[field] = value
		}
	}
	m = flagged.Merge(m)

	if o.autoMap {
		m = m.Merge(domain.SuggestMapping(columns))
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: use --first-name/--last-name, --mapping-file or --auto-map", err)
	}
	return m, nil
}

func (o batchOptions) target(now time.Time) (string, error) {
	if o.output != "" {
		if _, err := tabular.FormatFromFilename(o.output); err != nil {
			return "", err
		}
		return o.output, nil
	}

	format, err := tabular.FormatFromFilename(o.input)
	if err != nil {
		return "", err
	}
	if o.format != "" {
		format, err = tabular.ParseFormat(o.format)
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(filepath.Dir(o.input), tabular.OutputFilename(now, format)), nil
}

func printStats(out io.Writer, result app.BatchResult, showDuplicates bool) {
	stats := result.Stats
	fmt.Fprintln(out, renderTable(out, []string{"Metric", "Count"}, [][]string{
		{"Total records", strconv.Itoa(stats.Total)},
		{"Unique IDs", strconv.Itoa(stats.Distinct)},
		{"Duplicate IDs", strconv.Itoa(stats.Duplicates)},
		{"Error rows", strconv.Itoa(stats.Errors)},
	}, []columnAlignment{alignLeft, alignRight}))

	if len(result.Failures) > 0 {
		rows := make([][]string, 0, maxPrintedFailures)
		for _, failure := range result.Failures {
			if len(rows) == maxPrintedFailures {
				break
			}
			rows = append(rows, []string{strconv.Itoa(failure.RowIndex + 1), failure.Reason})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Row", "Error"}, rows, []columnAlignment{alignRight, alignLeft}))
	}

	if !stats.HasDuplicates() {
		return
	}
	if !showDuplicates {
		fmt.Fprintf(out, "Warning: %d identifiers are shared by more than one row (use --show-duplicates to list them)\n", len(stats.DuplicateGroups))
		return
	}

	rows := make([][]string, 0, len(stats.DuplicateGroups))
	for _, group := range stats.DuplicateGroups {
		rowNumbers := make([]string, 0, len(group.Rows))
		for _, row := range group.Rows {
			rowNumbers = append(rowNumbers, strconv.Itoa(row+1))
		}
		rows = append(rows, []string{group.ID, strconv.Itoa(len(group.Rows)), strings.Join(rowNumbers, ", ")})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Unique ID", "Count", "Rows"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}
