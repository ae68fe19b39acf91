// Package validate checks shaped records against a declarative schema.
package validate

import (
	"fmt"
	"sort"

	"github.com/omniscale/osmcsv/element"
	"github.com/omniscale/osmcsv/shape"
)

// ValidationError describes the first invalid field of a bundle.
type ValidationError struct {
	Section string
	// Index of the record within the section, 0 for node and way.
	Index  int
	ID     string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record #%d of element %s: field '%s': %s",
		e.Section, e.Index, e.ID, e.Field, e.Detail)
}

type Validator struct {
	schema Schema
}

func New(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate checks all records of b and returns a *ValidationError for the
// first invalid field. Records are checked in output order.
func (v *Validator) Validate(b *shape.Bundle) error {
	switch {
	case b.Node != nil:
		if err := v.validateRows(b, NodeSection, element.NodeColumns, [][]string{b.Node.Row()}); err != nil {
			return err
		}
		return v.validateRows(b, NodeTagsSection, element.TagColumns, tagRows(b.Tags))
	case b.Way != nil:
		if err := v.validateRows(b, WaySection, element.WayColumns, [][]string{b.Way.Row()}); err != nil {
			return err
		}
		if err := v.validateRows(b, WayTagsSection, element.TagColumns, tagRows(b.Tags)); err != nil {
			return err
		}
		rows := make([][]string, len(b.WayNodes))
		for i := range b.WayNodes {
			rows[i] = b.WayNodes[i].Row()
		}
		return v.validateRows(b, WayNodesSection, element.WayNodeColumns, rows)
	}
	return &ValidationError{Section: "bundle", Detail: "neither node nor way"}
}

func tagRows(tags []element.TagRecord) [][]string {
	rows := make([][]string, len(tags))
	for i := range tags {
		rows[i] = tags[i].Row()
	}
	return rows
}

func (v *Validator) validateRows(b *shape.Bundle, section string, columns []string, rows [][]string) error {
	rules := v.schema[section]
	for i, row := range rows {
		fail := func(field, detail string) error {
			return &ValidationError{Section: section, Index: i, ID: b.ID(), Field: field, Detail: detail}
		}
		present := make(map[string]struct{}, len(columns))
		for c, field := range columns {
			present[field] = struct{}{}
			rule, ok := rules[field]
			if !ok {
				return fail(field, "unknown field")
			}
			if detail := check(rule, row[c]); detail != "" {
				return fail(field, detail)
			}
		}
		for _, field := range sortedFields(rules) {
			if _, ok := present[field]; !ok && rules[field].Required {
				return fail(field, "required field")
			}
		}
	}
	return nil
}

// check returns the reason why value does not match rule, or an empty
// string.
func check(rule Rule, value string) string {
	var typed interface{} = value
	if rule.Coerce != "" {
		var err error
		typed, err = coerceFuncs[rule.Coerce](value)
		if err != nil {
			return fmt.Sprintf("field cannot be coerced: %v", err)
		}
	}
	if !typeChecks[rule.Type](typed) {
		return fmt.Sprintf("must be of %s type", rule.Type)
	}
	return ""
}

func sortedFields(rules map[string]Rule) []string {
	fields := make([]string, 0, len(rules))
	for f := range rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
