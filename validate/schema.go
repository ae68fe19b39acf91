package validate

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed schema.yml
var defaultSchemaYAML []byte

// Sections of a schema, one for each output table.
const (
	NodeSection     = "node"
	NodeTagsSection = "node_tags"
	WaySection      = "way"
	WayNodesSection = "way_nodes"
	WayTagsSection  = "way_tags"
)

var sections = []string{NodeSection, NodeTagsSection, WaySection, WayNodesSection, WayTagsSection}

// Rule describes a single field.
type Rule struct {
	Required bool   `yaml:"required"`
	Type     string `yaml:"type"`
	// Coerce converts the raw string value before the type is checked.
	Coerce string `yaml:"coerce"`
}

// Schema contains the rules for all fields of each section.
type Schema map[string]map[string]Rule

type coerceFunc func(string) (interface{}, error)

var coerceFuncs = map[string]coerceFunc{
	"int": func(v string) (interface{}, error) {
		return strconv.ParseInt(v, 10, 64)
	},
	"float": func(v string) (interface{}, error) {
		return strconv.ParseFloat(v, 64)
	},
}

var typeChecks = map[string]func(interface{}) bool{
	"integer": func(v interface{}) bool { _, ok := v.(int64); return ok },
	"float":   func(v interface{}) bool { _, ok := v.(float64); return ok },
	"string":  func(v interface{}) bool { _, ok := v.(string); return ok },
}

// DefaultSchema returns the built-in schema.
func DefaultSchema() Schema {
	schema, err := ParseSchema(defaultSchemaYAML)
	if err != nil {
		panic("invalid default schema: " + err.Error())
	}
	return schema
}

func SchemaFromFile(filename string) (Schema, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	schema, err := ParseSchema(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing schema %s", filename)
	}
	return schema, nil
}

// ParseSchema parses and checks a YAML schema.
func ParseSchema(b []byte) (Schema, error) {
	schema := Schema{}
	if err := yaml.UnmarshalStrict(b, &schema); err != nil {
		return nil, err
	}
	if err := schema.check(); err != nil {
		return nil, err
	}
	return schema, nil
}

func (s Schema) check() error {
	for _, section := range sections {
		if _, ok := s[section]; !ok {
			return fmt.Errorf("missing section %q", section)
		}
	}
	for section, fields := range s {
		known := false
		for _, name := range sections {
			if section == name {
				known = true
			}
		}
		if !known {
			return fmt.Errorf("unknown section %q", section)
		}
		for field, rule := range fields {
			if _, ok := typeChecks[rule.Type]; !ok {
				return fmt.Errorf("%s.%s: unknown type %q", section, field, rule.Type)
			}
			if _, ok := coerceFuncs[rule.Coerce]; rule.Coerce != "" && !ok {
				return fmt.Errorf("%s.%s: unknown coerce %q", section, field, rule.Coerce)
			}
		}
	}
	return nil
}
