package identifier

import (
	"context"
	"strings"

	domain "github.com/mohammadpnp/unique-id/internal/domain/person"
)

const notProvided = "Not provided"

type GenerateIdentifierInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	Kendra     string
	Zone       string
	Phone      string
	Email      string
}

type FieldSummary struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type GenerateIdentifierOutput struct {
	UniqueID string         `json:"unique_id"`
	Summary  []FieldSummary `json:"summary"`
}

type GenerateIdentifier interface {
	Execute(ctx context.Context, in GenerateIdentifierInput) (GenerateIdentifierOutput, error)
}

type generateIdentifier struct{}

func NewGenerateIdentifier() GenerateIdentifier {
	return &generateIdentifier{}
}

// Execute trims every input and requires first and last name before
// generating, the way single-record entry has always behaved.
func (uc *generateIdentifier) Execute(ctx context.Context, in GenerateIdentifierInput) (GenerateIdentifierOutput, error) {
	_ = ctx

	fields := domain.PersonFields{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Kendra:     in.Kendra,
		Zone:       in.Zone,
		Phone:      in.Phone,
		Email:      in.Email,
	}.TrimSpace()

	if fields.FirstName == "" || fields.LastName == "" {
		return GenerateIdentifierOutput{}, ErrMissingRequiredField
	}

	summary := make([]FieldSummary, 0, len(domain.LogicalFields))
	for _, field := range domain.LogicalFields {
		value := fields.Get(field)
		if strings.TrimSpace(value) == "" {
			value = notProvided
		}
		summary = append(summary, FieldSummary{
			Field: string(field),
			Label: field.Label(),
			Value: value,
		})
	}

	return GenerateIdentifierOutput{
		UniqueID: domain.Generate(fields).String(),
		Summary:  summary,
	}, nil
}
