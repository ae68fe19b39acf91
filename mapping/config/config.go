package config

import (
	"gopkg.in/yaml.v2"
)

// Rules contains the lookup tables of the cleaning rules as read from a
// rules file. Empty fields are filled with the built-in defaults by
// mapping.New.
type Rules struct {
	// StreetTypes maps abbreviated or irregular street types to their
	// canonical form (e.g. Ave: Avenue).
	StreetTypes map[string]string `yaml:"street_types"`
	// ExpectedStreetTypes are street types that are reported as valid by
	// the street audit.
	ExpectedStreetTypes []string `yaml:"expected_street_types"`
	// ExcludedPostcodes are postcodes outside of the extract region.
	ExcludedPostcodes []string `yaml:"excluded_postcodes"`
	StreetKeys        []string `yaml:"street_keys"`
	PostcodeKey       string   `yaml:"postcode_key"`
	// DefaultTagType is the type of tags without namespace.
	DefaultTagType string `yaml:"default_tag_type"`
}

func Parse(b []byte) (*Rules, error) {
	rules := &Rules{}
	if err := yaml.UnmarshalStrict(b, rules); err != nil {
		return nil, err
	}
	return rules, nil
}
