package identifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/unique-id/internal/domain/person"
	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"golang.org/x/sync/errgroup"
)

// IDColumn is the name of the column prepended to every batch result.
const IDColumn = "Unique_ID"

const maxStoredFailures = 100

type ApplyBatchInput struct {
	Table   *table.Table
	Mapping domain.FieldMapping
}

// RowResult is the outcome of one row: an identifier or an extraction error.
type RowResult struct {
	ID  domain.Identifier
	Err error
}

// Value is the identifier, or domain.ErrorMarker when the row failed.
func (r RowResult) Value() string {
	if r.Err != nil {
		return domain.ErrorMarker
	}
	return r.ID.String()
}

type RowFailure struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// BatchResult is the input table with a leading IDColumn, in input row order.
type BatchResult struct {
	BatchID  string
	Table    *table.Table
	Results  []RowResult
	Failures []RowFailure
	Stats    domain.Stats
}

// IDs returns the IDColumn values in row order.
func (r BatchResult) IDs() []string {
	ids := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		ids = append(ids, result.Value())
	}
	return ids
}

type ApplyBatch interface {
	Execute(ctx context.Context, in ApplyBatchInput) (BatchResult, error)
}

type BatchConfig struct {
	Workers   int
	ChunkSize int
	Logger    *slog.Logger
}

type applyBatch struct {
	cfg BatchConfig
}

func NewApplyBatch(cfg BatchConfig) ApplyBatch {
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &applyBatch{cfg: cfg}
}

// Execute generates an identifier for every row. A row that cannot be read
// gets domain.ErrorMarker and never affects the other rows. The only error
// returned is the context's.
func (uc *applyBatch) Execute(ctx context.Context, in ApplyBatchInput) (BatchResult, error) {
	source := in.Table
	if source == nil {
		source = table.New(nil)
	}

	batchID := uuid.NewString()
	logger := uc.cfg.Logger.With(slog.String("batch_id", batchID))

	rowCount := source.Len()
	results := make([]RowResult, rowCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Workers)

	for start := 0; start < rowCount; start += uc.cfg.ChunkSize {
		if gctx.Err() != nil {
			break
		}
		end := min(start+uc.cfg.ChunkSize, rowCount)

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = processRow(source, i, in.Mapping)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrApplyBatch, err)
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrApplyBatch, err)
	}

	var failures []RowFailure
	values := make([]table.Cell, 0, rowCount)
	for i, result := range results {
		values = append(values, table.Text(result.Value()))
		if result.Err == nil {
			continue
		}
		logger.Warn("row extraction failed", slog.Int("row", i+1), slog.String("reason", result.Err.Error()))
		if len(failures) < maxStoredFailures {
			failures = append(failures, RowFailure{RowIndex: i, Reason: truncateReason(result.Err.Error())})
		}
	}

	augmented, err := source.WithLeadingColumn(IDColumn, values)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrApplyBatch, err)
	}

	out := BatchResult{
		BatchID:  batchID,
		Table:    augmented,
		Results:  results,
		Failures: failures,
	}
	out.Stats = domain.Summarize(out.IDs())

	logger.Info("batch completed",
		slog.Int("total", out.Stats.Total),
		slog.Int("distinct", out.Stats.Distinct),
		slog.Int("duplicates", out.Stats.Duplicates),
		slog.Int("errors", out.Stats.Errors),
	)
	if out.Stats.HasDuplicates() {
		logger.Warn("duplicate identifiers found", slog.Int("groups", len(out.Stats.DuplicateGroups)))
	}

	return out, nil
}

func processRow(source *table.Table, i int, mapping domain.FieldMapping) RowResult {
	fields, err := ExtractFields(source, i, mapping)
	if err != nil {
		return RowResult{Err: err}
	}
	return RowResult{ID: domain.Generate(fields)}
}

// ExtractFields reads the mapped fields of row i. Unmapped fields, unknown
// columns and null cells become "".
func ExtractFields(source *table.Table, i int, mapping domain.FieldMapping) (domain.PersonFields, error) {
	var fields domain.PersonFields
	for _, field := range domain.LogicalFields {
		cell, err := source.Lookup(i, mapping.Column(field))
		if err != nil {
			return domain.PersonFields{}, fmt.Errorf("%w: %s: %w", ErrRowExtraction, field, err)
		}
		fields = fields.With(field, cell.String())
	}
	return fields, nil
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
