package values

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var (
	exchangeCodeRegex = regexp.MustCompile(`^[2-9][0-9]{2}$`)
	lineNumberRegex   = regexp.MustCompile(`^[0-9]{4}$`)
)

// PhoneCandidate is a synthesized placeholder number. It is immutable once created.
type PhoneCandidate struct {
	areaCode     string
	exchangeCode string
	lineNumber   string
	format       NumberFormat
	formatted    string
}

// NewPhoneCandidate creates a PhoneCandidate value object with validation
func NewPhoneCandidate(areaCode, exchangeCode, lineNumber string, format NumberFormat) (PhoneCandidate, error) {
	if !IsValidAreaCode(areaCode) {
		return PhoneCandidate{}, PhoneValidationError{Part: "area code", Value: areaCode}
	}
	if !exchangeCodeRegex.MatchString(exchangeCode) {
		return PhoneCandidate{}, PhoneValidationError{Part: "exchange code", Value: exchangeCode}
	}
	if !lineNumberRegex.MatchString(lineNumber) {
		return PhoneCandidate{}, PhoneValidationError{Part: "line number", Value: lineNumber}
	}

	return PhoneCandidate{
		areaCode:     areaCode,
		exchangeCode: exchangeCode,
		lineNumber:   lineNumber,
		format:       format,
		formatted:    format.Render(areaCode, exchangeCode, lineNumber),
	}, nil
}

// MustNewPhoneCandidate creates PhoneCandidate and panics on error (for constants/tests)
func MustNewPhoneCandidate(areaCode, exchangeCode, lineNumber string, format NumberFormat) PhoneCandidate {
	phone, err := NewPhoneCandidate(areaCode, exchangeCode, lineNumber, format)
	if err != nil {
		panic(err)
	}
	return phone
}

// AreaCode returns the 3-digit area code
func (p PhoneCandidate) AreaCode() string {
	return p.areaCode
}

// ExchangeCode returns the 3-digit exchange code
func (p PhoneCandidate) ExchangeCode() string {
	return p.exchangeCode
}

// LineNumber returns the 4-digit line number
func (p PhoneCandidate) LineNumber() string {
	return p.lineNumber
}

// Format returns the layout the number was rendered with
func (p PhoneCandidate) Format() NumberFormat {
	return p.format
}

// Formatted returns the rendered number
func (p PhoneCandidate) Formatted() string {
	return p.formatted
}

// String returns the rendered number
func (p PhoneCandidate) String() string {
	return p.formatted
}

// E164 returns the number as +1AAAEEELLLL
func (p PhoneCandidate) E164() string {
	if p.IsEmpty() {
		return ""
	}
	return "+1" + p.areaCode + p.exchangeCode + p.lineNumber
}

// IsEmpty checks if the candidate is the zero value
func (p PhoneCandidate) IsEmpty() bool {
	return p.formatted == ""
}

// Equal compares the rendered form, which is what uniqueness is defined on
func (p PhoneCandidate) Equal(other PhoneCandidate) bool {
	return p.formatted == other.formatted
}

// WithLineNumber returns a copy with the line number replaced and re-rendered
func (p PhoneCandidate) WithLineNumber(lineNumber string) (PhoneCandidate, error) {
	return NewPhoneCandidate(p.areaCode, p.exchangeCode, lineNumber, p.format)
}

type phoneCandidateJSON struct {
	Number       string `json:"number"`
	AreaCode     string `json:"area_code"`
	ExchangeCode string `json:"exchange_code"`
	LineNumber   string `json:"line_number"`
	Format       string `json:"format"`
}

// MarshalJSON implements JSON marshaling
func (p PhoneCandidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(phoneCandidateJSON{
		Number:       p.formatted,
		AreaCode:     p.areaCode,
		ExchangeCode: p.exchangeCode,
		LineNumber:   p.lineNumber,
		Format:       p.format.String(),
	})
}

// UnmarshalJSON implements JSON unmarshaling
func (p *PhoneCandidate) UnmarshalJSON(data []byte) error {
	var raw phoneCandidateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	format, err := NewNumberFormat(raw.Format)
	if err != nil {
		return err
	}

	phone, err := NewPhoneCandidate(raw.AreaCode, raw.ExchangeCode, raw.LineNumber, format)
	if err != nil {
		return err
	}

	*p = phone
	return nil
}

// PhoneValidationError represents a malformed number group
type PhoneValidationError struct {
	Part  string
	Value string
}

func (e PhoneValidationError) Error() string {
	return fmt.Sprintf("invalid %s '%s'", e.Part, e.Value)
}
