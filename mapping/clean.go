package mapping

import (
	"strings"
	"unicode/utf8"
)

// MissingPostcode replaces postcodes that can not be cleaned.
const MissingPostcode = "00000"

const postcodeLen = 5

// CleanStreetName normalizes a street name:
//   - anything after the first comma is removed (suite or unit numbers)
//   - names with # are cut before the #, except for Harvard Street
//   - an abbreviated street type as the last word is replaced by its
//     canonical form from streetTypes
//
// Other names are returned unchanged.
func CleanStreetName(name string, streetTypes map[string]string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return name[:i]
	}
	if i := strings.Index(name, "#"); i >= 0 {
		if strings.Contains(name, "Harvard") {
			return "Harvard Street"
		}
		return name[:i]
	}
	words := strings.Split(name, " ")
	last := len(words) - 1
	if canonical, ok := streetTypes[words[last]]; ok {
		words[last] = canonical
		return strings.Join(words, " ")
	}
	return name
}

// CleanPostcode returns the five character postcode of code or
// MissingPostcode. Rules are applied in this order:
//   - ZIP+4 codes are cut at the first hyphen
//   - codes with "MA " state prefix are stripped, if the rest is not
//     five characters long MissingPostcode is returned
//   - codes shorter than five characters and excluded codes are replaced
//     by MissingPostcode
//
// Results that are still not five characters long are replaced by
// MissingPostcode.
func CleanPostcode(code string, excluded map[string]struct{}) string {
	code = cleanPostcode(code, excluded)
	if utf8.RuneCountInString(code) != postcodeLen {
		return MissingPostcode
	}
	return code
}

func cleanPostcode(code string, excluded map[string]struct{}) string {
	if i := strings.Index(code, "-"); i >= 0 {
		return code[:i]
	}
	if strings.Contains(code, "MA") {
		code = strings.Replace(code, "MA ", "", -1)
		if utf8.RuneCountInString(code) == postcodeLen {
			return code
		}
		return MissingPostcode
	}
	if utf8.RuneCountInString(code) < postcodeLen {
		return MissingPostcode
	}
	if _, ok := excluded[code]; ok {
		return MissingPostcode
	}
	return code
}
