package values

import (
	"fmt"
	"regexp"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
)

// areaCodeRegex matches a North American area code: 3 digits, first digit 2-9
var areaCodeRegex = regexp.MustCompile(`^[2-9][0-9]{2}$`)

// AreaCodes is the whitelist of assigned area codes used when no fixed area code
// is configured. NANP allocation does not follow a digit rule, so this is a table.
var AreaCodes = []string{
	"201", "202", "203", "205", "206", "207", "208", "209",
	"210", "212", "213", "214", "215", "216", "217", "218",
	"219", "224", "225", "228", "229", "231", "234", "239",
	"240", "248", "251", "252", "253", "254", "256", "260",
	"262", "267", "269", "270", "272", "276", "281", "301",
	"302", "303", "304", "305", "307", "308", "309", "310",
	"312", "313", "314", "315", "316", "317", "318", "319",
	"320", "321", "323", "325", "330", "331", "332", "334",
	"336", "337", "339", "346", "347", "351", "352", "360",
	"361", "385", "386", "401", "402", "404", "405", "406",
	"407", "408", "409", "410", "412", "413", "414", "415",
	"417", "419", "423", "424", "425", "430", "432", "434",
	"435", "440", "442", "443", "445", "447", "458", "463",
	"469", "470", "475", "478", "479", "480", "484", "501",
	"502", "503", "504", "505", "507", "508", "509", "510",
	"512", "513", "515", "516", "517", "518", "520", "530",
	"531", "534", "539", "540", "541", "551", "559", "561",
	"562", "563", "570", "571", "573", "574", "575", "580",
	"585", "586", "601", "602", "603", "605", "606", "607",
	"608", "609", "610", "612", "614", "615", "616", "617",
	"618", "619", "620", "623", "626", "628", "629", "630",
	"631", "636", "641", "646", "650", "651", "657", "660",
	"661", "662", "667", "669", "678", "680", "681", "682",
	"701", "702", "703", "704", "706", "707", "708", "712",
	"713", "714", "715", "716", "717", "718", "719", "720",
	"724", "725", "727", "730", "731", "732", "734", "737",
	"740", "743", "747", "754", "757", "760", "762", "763",
	"765", "769", "770", "772", "773", "774", "775", "779",
	"781", "785", "786", "801", "802", "803", "804", "805",
	"806", "808", "810", "812", "813", "814", "815", "816",
	"817", "818", "828", "830", "831", "832", "843", "845",
	"847", "848", "850", "856", "857", "858", "859", "860",
	"862", "863", "864", "865", "870", "872", "878", "901",
	"903", "904", "906", "907", "908", "909", "910", "912",
	"913", "914", "915", "916", "917", "918", "919", "920",
	"925", "928", "929", "930", "931", "934", "936", "937",
	"938", "940", "941", "947", "949", "951", "952", "954",
	"956", "970", "971", "972", "973", "978", "979", "980",
	"984", "985", "989",
}

var knownAreaCodes = func() map[string]bool {
	m := make(map[string]bool, len(AreaCodes))
	for _, code := range AreaCodes {
		m[code] = true
	}
	return m
}()

// IsValidAreaCode reports whether code has the shape of a NANP area code
func IsValidAreaCode(code string) bool {
	return areaCodeRegex.MatchString(code)
}

// IsKnownAreaCode reports whether code is in the whitelist
func IsKnownAreaCode(code string) bool {
	return knownAreaCodes[code]
}

// ValidateAreaCode accepts an empty code (no fixed area code) or a well-formed one
func ValidateAreaCode(code string) error {
	if code == "" {
		return nil
	}
	if !IsValidAreaCode(code) {
		return errors.NewValidationError(errors.CodeInvalidAreaCode,
			fmt.Sprintf("invalid area code '%s': must be 3 digits, not starting with 0 or 1", code))
	}
	return nil
}
