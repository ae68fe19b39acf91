package mapping

import (
	"testing"
	"unicode/utf8"
)

func TestCleanStreetName(t *testing.T) {
	streetTypes := DefaultRules().streetTypes
	for _, tc := range []struct {
		name     string
		expected string
	}{
		{"Huntington Ave", "Huntington Avenue"},
		{"Huntington Ave.", "Huntington Avenue"},
		{"Boylston St", "Boylston Street"},
		{"Main Street", "Main Street"},
		{"Main St, Apt 4", "Main St"},
		{"Main St,Suite 100", "Main St"},
		{"Massachusetts Avenue #2", "Massachusetts Avenue "},
		{"Harvard St #3", "Harvard Street"},
		{"Harvard Ave, #3", "Harvard Ave"},
		{"Bennington St", "Bennington Street"},
		{"Rd", "Road"},
		{"Broadway", "Broadway"},
		{"Main  St", "Main  Street"},
		{"", ""},
		{"Main Str", "Main Str"},
	} {
		if cleaned := CleanStreetName(tc.name, streetTypes); cleaned != tc.expected {
			t.Errorf("%q: %q != %q", tc.name, cleaned, tc.expected)
		}
	}
}

func TestCleanStreetNameIdempotent(t *testing.T) {
	streetTypes := DefaultRules().streetTypes
	for _, canonical := range []string{"Main Street", "Huntington Avenue", "Storrow Drive", "Copley Square", "Broadway"} {
		if cleaned := CleanStreetName(canonical, streetTypes); cleaned != canonical {
			t.Errorf("%q changed to %q", canonical, cleaned)
		}
		if twice := CleanStreetName(CleanStreetName(canonical+" St", streetTypes), streetTypes); twice != canonical+" Street" {
			t.Errorf("%q cleaned twice: %q", canonical, twice)
		}
	}
}

func TestCleanPostcode(t *testing.T) {
	excluded := DefaultRules().excludedPostcodes
	for _, tc := range []struct {
		code     string
		expected string
	}{
		{"02134", "02134"},
		{"02134-1234", "02134"},
		{"MA 02134", "02134"},
		{"MA 021", "00000"},
		{"MA", "00000"},
		{"MA 02134-1234", "00000"},
		{"0213", "00000"},
		{"", "00000"},
		{"01238", "00000"},
		{"01125", "00000"},
		{"20052", "00000"},
		{"01240", "00000"},
		{"01250", "00000"},
		{"01238-0001", "01238"},
		{"021345", "00000"},
		{"02-134", "00000"},
		{"MA02134", "00000"},
	} {
		if cleaned := CleanPostcode(tc.code, excluded); cleaned != tc.expected {
			t.Errorf("%q: %q != %q", tc.code, cleaned, tc.expected)
		}
	}
}

func TestCleanPostcodeLength(t *testing.T) {
	excluded := DefaultRules().excludedPostcodes
	for _, code := range []string{"", "1", "02134", "02134-1234", "MA 02134", "MA 021", "Boston, MA 02116", "021340000", "ÄÖÜ", "ÄÖÜßé"} {
		cleaned := CleanPostcode(code, excluded)
		if utf8.RuneCountInString(cleaned) != 5 {
			t.Errorf("%q: cleaned to %q", code, cleaned)
		}
	}
}
