package mapping

import (
	"testing"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		key      string
		expected Category
	}{
		{"", Plain},
		{"highway", Plain},
		{"name_1", Other},
		{"old_name", Plain},
		{"addr:street", Namespaced},
		{"addr:", Namespaced},
		{":", Namespaced},
		{"name:en", Namespaced},
		{"addr:street:name", Other},
		{"Name", Other},
		{"FIXME", Other},
		{"name:zh-Hant", Other},
		{"fixme one", Problem},
		{"a.b", Problem},
		{"addr:street,", Problem},
		{"k=v", Problem},
		{"tab\tkey", Problem},
		{"Key With Space", Problem},
		{"#hashtag", Problem},
	} {
		if c := Classify(tc.key); c != tc.expected {
			t.Errorf("%q: %s != %s", tc.key, c, tc.expected)
		}
	}
}

func TestHasProblemChars(t *testing.T) {
	for _, r := range ProblemChars {
		if !HasProblemChars("abc" + string(r) + "def") {
			t.Errorf("%q not detected", r)
		}
		if Classify(string(r)+"abc") != Problem {
			t.Errorf("%q not classified as problem", r)
		}
	}
	for _, key := range []string{"highway", "addr:street", "name_1", "Name", "name:zh-Hant"} {
		if HasProblemChars(key) {
			t.Errorf("%q has no problem chars", key)
		}
	}
}

func TestCategoryString(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Categories {
		names[c.String()] = true
	}
	if len(names) != 4 || names["unknown"] {
		t.Error(names)
	}
}
