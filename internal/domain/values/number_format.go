package values

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
)

// NumberFormat represents the layout used to render a phone number
type NumberFormat struct {
	format string
}

// Supported number layouts
const (
	FormatStandard = "standard"
	FormatDashes   = "dashes"
	FormatSpaces   = "spaces"
	FormatPlain    = "plain"
)

var (
	// Supported formats for validation
	supportedNumberFormats = map[string]bool{
		FormatStandard: true,
		FormatDashes:   true,
		FormatSpaces:   true,
		FormatPlain:    true,
	}

	// Human-readable examples, used in CLI help
	numberFormatExamples = map[string]string{
		FormatStandard: "(555) 555-5555",
		FormatDashes:   "555-555-5555",
		FormatSpaces:   "555 555 5555",
		FormatPlain:    "5555555555",
	}
)

// NewNumberFormat creates a NumberFormat with validation. An empty value selects
// the standard layout.
func NewNumberFormat(format string) (NumberFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		return StandardFormat(), nil
	}

	if !supportedNumberFormats[normalized] {
		return NumberFormat{}, errors.NewValidationError(errors.CodeInvalidFormat,
			fmt.Sprintf("number format '%s' is not supported", format))
	}

	return NumberFormat{format: normalized}, nil
}

// ParseNumberFormat is the lenient counterpart of NewNumberFormat: unknown tags
// select the standard layout.
func ParseNumberFormat(format string) NumberFormat {
	nf, err := NewNumberFormat(format)
	if err != nil {
		return StandardFormat()
	}
	return nf
}

// MustNewNumberFormat creates NumberFormat and panics on error (for constants/tests)
func MustNewNumberFormat(format string) NumberFormat {
	nf, err := NewNumberFormat(format)
	if err != nil {
		panic(err)
	}
	return nf
}

// StandardFormat returns the default "(A) E-L" layout
func StandardFormat() NumberFormat {
	return NumberFormat{format: FormatStandard}
}

// SupportedNumberFormats lists every accepted format tag
func SupportedNumberFormats() []string {
	return []string{FormatStandard, FormatDashes, FormatSpaces, FormatPlain}
}

// NumberFormatExample returns a sample rendering for the given tag
func NumberFormatExample(format string) string {
	return numberFormatExamples[format]
}

// String returns the format tag
func (f NumberFormat) String() string {
	if f.format == "" {
		return FormatStandard
	}
	return f.format
}

// IsEmpty checks if the format is the zero value
func (f NumberFormat) IsEmpty() bool {
	return f.format == ""
}

// Equal checks if two NumberFormat values are equal
func (f NumberFormat) Equal(other NumberFormat) bool {
	return f.String() == other.String()
}

// Render lays out the three number groups. Unknown or empty formats fall back
// to the standard layout.
func (f NumberFormat) Render(areaCode, exchangeCode, lineNumber string) string {
	return FormatNumber(areaCode, exchangeCode, lineNumber, f.format)
}

// FormatNumber lays out the three number groups for a raw format tag
func FormatNumber(areaCode, exchangeCode, lineNumber, format string) string {
	switch format {
	case FormatStandard:
		return "(" + areaCode + ") " + exchangeCode + "-" + lineNumber
	case FormatDashes:
		return areaCode + "-" + exchangeCode + "-" + lineNumber
	case FormatSpaces:
		return areaCode + " " + exchangeCode + " " + lineNumber
	case FormatPlain:
		return areaCode + exchangeCode + lineNumber
	default:
		return "(" + areaCode + ") " + exchangeCode + "-" + lineNumber
	}
}

// MarshalJSON implements JSON marshaling
func (f NumberFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements JSON unmarshaling
func (f *NumberFormat) UnmarshalJSON(data []byte) error {
	var format string
	if err := json.Unmarshal(data, &format); err != nil {
		return err
	}

	nf, err := NewNumberFormat(format)
	if err != nil {
		return err
	}

	*f = nf
	return nil
}
