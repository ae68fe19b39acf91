package mapping

import (
	_ "embed"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/mapping/config"
)

//go:embed default_rules.yml
var defaultRulesYAML []byte

// Rules contains the lookup tables for the value cleaners.
type Rules struct {
	streetTypes         map[string]string
	expectedStreetTypes map[string]struct{}
	excludedPostcodes   map[string]struct{}
	streetKeys          map[string]struct{}
	postcodeKey         string
	defaultTagType      string
}

// DefaultRules returns the built-in rules.
func DefaultRules() *Rules {
	conf, err := config.Parse(defaultRulesYAML)
	if err != nil {
		panic("invalid default rules: " + err.Error())
	}
	return newRules(conf)
}

// FromFile reads rules from a YAML file, see New.
func FromFile(filename string) (*Rules, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	rules, err := New(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing rules %s", filename)
	}
	return rules, nil
}

// New parses rules from YAML. Tables that are missing or empty in b are
// taken from the default rules.
func New(b []byte) (*Rules, error) {
	conf, err := config.Parse(b)
	if err != nil {
		return nil, err
	}
	defaults, err := config.Parse(defaultRulesYAML)
	if err != nil {
		return nil, err
	}
	if len(conf.StreetTypes) == 0 {
		conf.StreetTypes = defaults.StreetTypes
	}
	if len(conf.ExpectedStreetTypes) == 0 {
		conf.ExpectedStreetTypes = defaults.ExpectedStreetTypes
	}
	if len(conf.ExcludedPostcodes) == 0 {
		conf.ExcludedPostcodes = defaults.ExcludedPostcodes
	}
	if len(conf.StreetKeys) == 0 {
		conf.StreetKeys = defaults.StreetKeys
	}
	if conf.PostcodeKey == "" {
		conf.PostcodeKey = defaults.PostcodeKey
	}
	if conf.DefaultTagType == "" {
		conf.DefaultTagType = defaults.DefaultTagType
	}
	return newRules(conf), nil
}

func newRules(conf *config.Rules) *Rules {
	r := &Rules{
		streetTypes:         make(map[string]string, len(conf.StreetTypes)),
		expectedStreetTypes: toSet(conf.ExpectedStreetTypes),
		excludedPostcodes:   toSet(conf.ExcludedPostcodes),
		streetKeys:          toSet(conf.StreetKeys),
		postcodeKey:         conf.PostcodeKey,
		defaultTagType:      conf.DefaultTagType,
	}
	for k, v := range conf.StreetTypes {
		r.streetTypes[k] = v
	}
	return r
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (r *Rules) IsStreetKey(key string) bool {
	_, ok := r.streetKeys[key]
	return ok
}

func (r *Rules) IsPostcodeKey(key string) bool {
	return key == r.postcodeKey
}

func (r *Rules) IsExpectedStreetType(streetType string) bool {
	_, ok := r.expectedStreetTypes[streetType]
	return ok
}

func (r *Rules) DefaultTagType() string {
	return r.defaultTagType
}

// CleanStreetName cleans name with the street types of r.
func (r *Rules) CleanStreetName(name string) string {
	return CleanStreetName(name, r.streetTypes)
}

// CleanPostcode cleans code with the excluded postcodes of r.
func (r *Rules) CleanPostcode(code string) string {
	return CleanPostcode(code, r.excludedPostcodes)
}

// CleanValue returns the cleaned value for the tag key. Values of keys
// without a cleaner are returned unchanged.
func (r *Rules) CleanValue(key, value string) string {
	if r.IsPostcodeKey(key) {
		return r.CleanPostcode(value)
	}
	if r.IsStreetKey(key) {
		return r.CleanStreetName(value)
	}
	return value
}
