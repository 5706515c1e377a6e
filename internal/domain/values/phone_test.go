package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneCandidate(t *testing.T) {
	tests := []struct {
		name     string
		area     string
		exchange string
		line     string
		format   string
		expected string
		wantErr  bool
	}{
		{
			name:     "standard layout",
			area:     "212",
			exchange: "555",
			line:     "0100",
			format:   FormatStandard,
			expected: "(212) 555-0100",
		},
		{
			name:     "dashes layout",
			area:     "212",
			exchange: "555",
			line:     "0100",
			format:   FormatDashes,
			expected: "212-555-0100",
		},
		{
			name:     "spaces layout",
			area:     "212",
			exchange: "555",
			line:     "0100",
			format:   FormatSpaces,
			expected: "212 555 0100",
		},
		{
			name:     "plain layout",
			area:     "212",
			exchange: "555",
			line:     "0100",
			format:   FormatPlain,
			expected: "2125550100",
		},
		{
			name:     "area code starting with 1",
			area:     "123",
			exchange: "555",
			line:     "0100",
			format:   FormatStandard,
			wantErr:  true,
		},
		{
			name:     "exchange starting with 0",
			area:     "212",
			exchange: "055",
			line:     "0100",
			format:   FormatStandard,
			wantErr:  true,
		},
		{
			name:     "short line number",
			area:     "212",
			exchange: "555",
			line:     "100",
			format:   FormatStandard,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := NewPhoneCandidate(tt.area, tt.exchange, tt.line, MustNewNumberFormat(tt.format))

			if tt.wantErr {
				assert.Error(t, err)
				var pve PhoneValidationError
				assert.ErrorAs(t, err, &pve)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, phone.Formatted())
			assert.Equal(t, tt.area, phone.AreaCode())
			assert.Equal(t, tt.exchange, phone.ExchangeCode())
			assert.Equal(t, tt.line, phone.LineNumber())
		})
	}
}

func TestPhoneCandidate_ZeroFormatRendersStandard(t *testing.T) {
	phone := MustNewPhoneCandidate("212", "555", "0100", NumberFormat{})
	assert.Equal(t, "(212) 555-0100", phone.String())
}

func TestPhoneCandidate_WithLineNumber(t *testing.T) {
	phone := MustNewPhoneCandidate("415", "234", "5678", MustNewNumberFormat(FormatDashes))

	replaced, err := phone.WithLineNumber("0042")
	require.NoError(t, err)

	assert.Equal(t, "415-234-0042", replaced.Formatted())
	assert.Equal(t, "415-234-5678", phone.Formatted(), "receiver is unchanged")

	_, err = phone.WithLineNumber("42")
	assert.Error(t, err)
}

func TestPhoneCandidate_E164(t *testing.T) {
	phone := MustNewPhoneCandidate("310", "987", "6543", StandardFormat())
	assert.Equal(t, "+13109876543", phone.E164())
	assert.Equal(t, "", PhoneCandidate{}.E164())
}

func TestPhoneCandidate_Equal(t *testing.T) {
	a := MustNewPhoneCandidate("305", "876", "5432", StandardFormat())
	b := MustNewPhoneCandidate("305", "876", "5432", StandardFormat())
	c := MustNewPhoneCandidate("305", "876", "5432", MustNewNumberFormat(FormatPlain))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestPhoneCandidate_JSON(t *testing.T) {
	phone := MustNewPhoneCandidate("312", "345", "6789", MustNewNumberFormat(FormatSpaces))

	data, err := json.Marshal(phone)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"number": "312 345 6789",
		"area_code": "312",
		"exchange_code": "345",
		"line_number": "6789",
		"format": "spaces"
	}`, string(data))

	var decoded PhoneCandidate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, phone.Equal(decoded))

	err = json.Unmarshal([]byte(`{"area_code":"012","exchange_code":"345","line_number":"6789"}`), &decoded)
	assert.Error(t, err)
}
