package person

import (
	"fmt"
	"strings"
)

// LogicalField names one of the seven inputs of the identifier, independent
// of the column names used by any source table.
type LogicalField string

const (
	FirstName  LogicalField = "first_name"
	MiddleName LogicalField = "middle_name"
	LastName   LogicalField = "last_name"
	Kendra     LogicalField = "kendra"
	Zone       LogicalField = "zone"
	Phone      LogicalField = "phone"
	Email      LogicalField = "email"
)

// LogicalFields lists every logical field in display order.
var LogicalFields = []LogicalField{FirstName, MiddleName, LastName, Kendra, Zone, Phone, Email}

var fieldLabels = map[LogicalField]string{
	FirstName:  "First Name",
	MiddleName: "Middle Name",
	LastName:   "Last Name",
	Kendra:     "Kendra",
	Zone:       "Zone",
	Phone:      "Phone",
	Email:      "Email",
}

func (f LogicalField) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

func (f LogicalField) Required() bool {
	return f == FirstName || f == LastName
}

func ParseLogicalField(raw string) (LogicalField, error) {
	field := LogicalField(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := fieldLabels[field]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return field, nil
}

// PersonFields is the normalized input of Generate. Absent values are empty
// strings; no field is validated for format.
type PersonFields struct {
	FirstName  string
	MiddleName string
	LastName   string
	Kendra     string
	Zone       string
	Email      string
	Phone      string
}

func (p PersonFields) Get(field LogicalField) string {
	switch field {
	case FirstName:
		return p.FirstName
	case MiddleName:
		return p.MiddleName
	case LastName:
		return p.LastName
	case Kendra:
		return p.Kendra
	case Zone:
		return p.Zone
	case Phone:
		return p.Phone
	case Email:
		return p.Email
	}
	return ""
}

// With returns a copy of p with field set to value.
func (p PersonFields) With(field LogicalField, value string) PersonFields {
	switch field {
	case FirstName:
		p.FirstName = value
	case MiddleName:
		p.MiddleName = value
	case LastName:
		p.LastName = value
	case Kendra:
		p.Kendra = value
	case Zone:
		p.Zone = value
	case Phone:
		p.Phone = value
	case Email:
		p.Email = value
	}
	return p
}

// TrimSpace returns a copy of p with surrounding whitespace removed from every field.
func (p PersonFields) TrimSpace() PersonFields {
	for _, field := range LogicalFields {
		p = p.With(field, strings.TrimSpace(p.Get(field)))
	}
	return p
}

// PrimaryContact is the phone when present, otherwise the email. The channel
// not selected never reaches the hash.
func (p PersonFields) PrimaryContact() string {
	if p.Phone != "" {
		return p.Phone
	}
	return p.Email
}

// FieldMapping maps logical fields to table column names. An empty column
// name leaves the field unmapped.
type FieldMapping map[LogicalField]string

func (m FieldMapping) Column(field LogicalField) string {
	if m == nil {
		return ""
	}
	return m[field]
}

// MissingRequired reports the required fields that have no column.
func (m FieldMapping) MissingRequired() []LogicalField {
	var missing []LogicalField
	for _, field := range LogicalFields {
		if field.Required() && strings.TrimSpace(m.Column(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Validate checks the bulk precondition: first and last name must be mapped.
func (m FieldMapping) Validate() error {
	if missing := m.MissingRequired(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, field := range missing {
			names = append(names, string(field))
		}
		return fmt.Errorf("%w: missing %s", ErrMissingRequiredMapping, strings.Join(names, ", "))
	}
	return nil
}

// Merge returns a mapping where explicit entries of m win over fallback.
func (m FieldMapping) Merge(fallback FieldMapping) FieldMapping {
	out := make(FieldMapping, len(LogicalFields))
	for _, field := range LogicalFields {
		if column := m.Column(field); column != "" {
			out[field] = column
			continue
		}
		if column := fallback.Column(field); column != "" {
			out[field] = column
		}
	}
	return out
}

var headerAliases = map[string]LogicalField{
	"firstname":    FirstName,
	"first":        FirstName,
	"givenname":    FirstName,
	"forename":     FirstName,
	"middlename":   MiddleName,
	"middle":       MiddleName,
	"lastname":     LastName,
	"last":         LastName,
	"surname":      LastName,
	"familyname":   LastName,
	"kendra":       Kendra,
	"zone":         Zone,
	"phone":        Phone,
	"phonenumber":  Phone,
	"mobile":       Phone,
	"mobilenumber": Phone,
	"contact":      Phone,
	"email":        Email,
	"emailaddress": Email,
	"mail":         Email,
}

// SuggestMapping guesses a mapping from header names such as "First Name",
// "first_name" or "FirstName". The first matching column wins.
func SuggestMapping(columns []string) FieldMapping {
	out := FieldMapping{}
	for _, column := range columns {
		field, ok := headerAliases[normalizeHeader(column)]
		if !ok {
			continue
		}
		if _, taken := out[field]; taken {
			continue
		}
		out[field] = column
	}
	return out
}

func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
