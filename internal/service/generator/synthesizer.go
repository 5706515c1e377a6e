package generator

import (
	"fmt"
	"strconv"

	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
)

// MaxAttempts bounds the random draws GenerateUnique makes before falling back
const MaxAttempts = 100

// Synthesize draws one candidate. cfg.AreaCode is used verbatim when set and must
// already be validated; otherwise the area code comes from the whitelist.
func Synthesize(cfg GenerationConfig, rng Random) (values.PhoneCandidate, error) {
	areaCode := cfg.AreaCode
	if areaCode == "" {
		areaCode = randomAreaCode(rng)
	}

	candidate, err := values.NewPhoneCandidate(areaCode, randomExchangeCode(rng), randomLineNumber(rng), cfg.Format)
	if err != nil {
		return values.PhoneCandidate{}, fmt.Errorf("synthesize: %w", err)
	}
	return candidate, nil
}

func randomDigit(rng Random) int {
	return rng.Intn(10)
}

func randomAreaCode(rng Random) string {
	return values.AreaCodes[rng.Intn(len(values.AreaCodes))]
}

// randomExchangeCode redraws the leading digit until it is 2-9
func randomExchangeCode(rng Random) string {
	first := randomDigit(rng)
	for first < 2 {
		first = randomDigit(rng)
	}

	buf := make([]byte, 0, 3)
	buf = strconv.AppendInt(buf, int64(first), 10)
	buf = strconv.AppendInt(buf, int64(randomDigit(rng)), 10)
	buf = strconv.AppendInt(buf, int64(randomDigit(rng)), 10)
	return string(buf)
}

func randomLineNumber(rng Random) string {
	buf := make([]byte, 0, 4)
	for i := 0; i < 4; i++ {
		buf = strconv.AppendInt(buf, int64(randomDigit(rng)), 10)
	}
	return string(buf)
}

// timestampLineNumber returns the last four digits of a millisecond timestamp
func timestampLineNumber(unixMilli int64) string {
	if unixMilli < 0 {
		unixMilli = -unixMilli
	}
	return fmt.Sprintf("%04d", unixMilli%10000)
}
