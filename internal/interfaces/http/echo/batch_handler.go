package echo

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/unique-id/internal/application/identifier"
	domain "github.com/mohammadpnp/unique-id/internal/domain/person"
	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/tabular"
)

type BatchHandler struct {
	useCase app.ApplyBatch
	now     func() time.Time
}

type batchStatsOutput struct {
	TotalRecords int `json:"total_records"`
	UniqueIDs    int `json:"unique_ids"`
	DuplicateIDs int `json:"duplicate_ids"`
	ErrorRows    int `json:"error_rows"`
}

type duplicateGroupOutput struct {
	UniqueID string `json:"unique_id"`
	Rows     []int  `json:"rows"`
}

type batchOutput struct {
	BatchID    string                 `json:"batch_id"`
	Columns    []string               `json:"columns"`
	Rows       [][]*string            `json:"rows"`
	Stats      batchStatsOutput       `json:"stats"`
	Duplicates []duplicateGroupOutput `json:"duplicates"`
	Failures   []app.RowFailure       `json:"failures"`
}

func NewBatchHandler(useCase app.ApplyBatch) *BatchHandler {
	return &BatchHandler{useCase: useCase, now: time.Now}
}

// GenerateBatch reads a multipart upload: the table in "file", one form value
// per logical field naming its column, optional "auto_map" and "format".
func (h *BatchHandler) GenerateBatch(c echo.Context) error {
	outputFormat := strings.ToLower(strings.TrimSpace(c.FormValue("format")))
	if outputFormat != "" && outputFormat != "json" {
		if _, err := tabular.ParseFormat(outputFormat); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse("unsupported_format", "format must be json, csv or xlsx"))
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("missing_file", "file is required"))
	}

	inputFormat, err := tabular.FormatFromFilename(fileHeader.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("unsupported_format", "file must be a .csv or .xlsx file"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("invalid_table", "failed to open uploaded file"))
	}
	defer src.Close()

	source, err := tabular.Read(inputFormat, src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("invalid_table", fmt.Sprintf("failed to read file: %v", err)))
	}

	mapping := domain.FieldMapping{}
	for _, field := range domain.LogicalFields {
		if column := strings.TrimSpace(c.FormValue(string(field))); column != "" {
			mapping[field] = column
		}
	}
	if autoMap, _ := strconv.ParseBool(c.FormValue("auto_map")); autoMap {
		mapping = mapping.Merge(domain.SuggestMapping(source.Columns))
	}
	if err := mapping.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("missing_required_mapping", "first_name and last_name columns must be mapped"))
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.ApplyBatchInput{
		Table:   source,
		Mapping: mapping,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "failed to generate unique ids"))
	}

	if outputFormat == "" || outputFormat == "json" {
		return c.JSON(http.StatusOK, apiResponse{Data: newBatchOutput(out)})
	}

	format, _ := tabular.ParseFormat(outputFormat)
	var buf bytes.Buffer
	if err := tabular.Write(format, &buf, out.Table); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "failed to encode result"))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", tabular.OutputFilename(h.now(), format)))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func newBatchOutput(out app.BatchResult) batchOutput {
	rows := make([][]*string, 0, out.Table.Len())
	for _, row := range out.Table.Rows {
		rows = append(rows, cellPointers(row, len(out.Table.Columns)))
	}

	duplicates := make([]duplicateGroupOutput, 0, len(out.Stats.DuplicateGroups))
	for _, group := range out.Stats.DuplicateGroups {
		duplicates = append(duplicates, duplicateGroupOutput{UniqueID: group.ID, Rows: group.Rows})
	}

	failures := out.Failures
	if failures == nil {
		failures = []app.RowFailure{}
	}

	return batchOutput{
		BatchID: out.BatchID,
		Columns: out.Table.Columns,
		Rows:    rows,
		Stats: batchStatsOutput{
			TotalRecords: out.Stats.Total,
			UniqueIDs:    out.Stats.Distinct,
			DuplicateIDs: out.Stats.Duplicates,
			ErrorRows:    out.Stats.Errors,
		},
		Duplicates: duplicates,
		Failures:   failures,
	}
}

func cellPointers(row table.Row, width int) []*string {
	out := make([]*string, width)
	for i := 0; i < width && i < len(row.Cells); i++ {
		if row.Cells[i].Valid {
			value := row.Cells[i].Value
			out[i] = &value
		}
	}
	return out
}
