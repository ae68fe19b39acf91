package audit

import (
	"io"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/element"
	"github.com/omniscale/osmcsv/mapping"
)

// Source returns elements until io.EOF, see parser.Source.
type Source interface {
	Next() (*element.Element, error)
}

// Auditor collects all audits for the tags of a stream of elements.
type Auditor struct {
	rules    *mapping.Rules
	Keys     *KeyCounter
	Streets  *StreetTypes
	Values   []*ValueCounter
	Elements int64
}

// New returns an Auditor that keeps maxExamples keys per category and
// counts the values of valueKeys.
func New(rules *mapping.Rules, maxExamples int, valueKeys []string) *Auditor {
	a := &Auditor{
		rules:   rules,
		Keys:    NewKeyCounter(maxExamples),
		Streets: NewStreetTypes(rules),
	}
	for _, k := range valueKeys {
		a.Values = append(a.Values, NewValueCounter(k))
	}
	return a
}

// Add audits all tags of e.
func (a *Auditor) Add(e *element.Element) {
	a.Elements++
	for _, tag := range e.ChildrenNamed("tag") {
		k, v := tag.Attrs["k"], tag.Attrs["v"]
		a.Keys.Add(k)
		if a.rules.IsStreetKey(k) {
			a.Streets.Add(v)
		}
		for _, vc := range a.Values {
			if vc.Key == k {
				vc.Add(v)
			}
		}
	}
}

// Run audits all elements of src.
func (a *Auditor) Run(src Source) error {
	for {
		e, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading elements")
		}
		a.Add(e)
	}
}
