package person

import (
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	identifierModulus = 100000
	identifierDigits  = 5
)

// ErrorMarker replaces the identifier of a row that could not be processed.
const ErrorMarker = "ERROR"

// Identifier has the shape <INITIALS>-<DDDDD>. The initials may be empty or
// contain a dash themselves. It is not unique: different people may share one.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Generate derives the identifier of p. It is a pure function of the seven
// fields: the same values always give the same identifier.
func Generate(p PersonFields) Identifier {
	var initials string
	if p.FirstName != "" && p.LastName != "" {
		initials = upperFirst(p.FirstName) + upperFirst(p.LastName)
	}

	// Fields are joined without separators; "Jo"+"hn" and "John"+"" hash alike.
	combined := p.FirstName + p.MiddleName + p.LastName + p.Kendra + p.Zone + p.PrimaryContact()
	sum := sha256.Sum256([]byte(combined))

	return Identifier(fmt.Sprintf("%s-%0*d", initials, identifierDigits, reduce(sum)))
}

// GenerateFrom is Generate with positional arguments.
func GenerateFrom(first, middle, last, kendra, zone, email, phone string) Identifier {
	return Generate(PersonFields{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		Kendra:     kendra,
		Zone:       zone,
		Email:      email,
		Phone:      phone,
	})
}

// reduce returns the digest, read as a big-endian integer, modulo identifierModulus.
func reduce(sum [sha256.Size]byte) int {
	n := 0
	for _, b := range sum {
		n = (n<<8 | int(b)) % identifierModulus
	}
	return n
}

// upperFirst upper-cases the first rune of s with full case mapping, so a
// leading "ß" becomes "SS".
func upperFirst(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size])
}
