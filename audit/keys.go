// Package audit collects statistics about tag keys and values to find
// data quality problems before an extract is converted.
package audit

import (
	"sort"

	"github.com/omniscale/osmcsv/mapping"
)

// KeyCounter counts tag keys by mapping.Category and keeps up to
// maxExamples distinct keys of each category.
type KeyCounter struct {
	maxExamples int
	counts      map[mapping.Category]int64
	examples    map[mapping.Category]map[string]struct{}
}

func NewKeyCounter(maxExamples int) *KeyCounter {
	kc := &KeyCounter{
		maxExamples: maxExamples,
		counts:      make(map[mapping.Category]int64),
		examples:    make(map[mapping.Category]map[string]struct{}),
	}
	for _, c := range mapping.Categories {
		kc.examples[c] = make(map[string]struct{})
	}
	return kc
}

// Add classifies key and returns its category.
func (kc *KeyCounter) Add(key string) mapping.Category {
	c := mapping.Classify(key)
	kc.counts[c]++
	examples := kc.examples[c]
	if _, ok := examples[key]; !ok && len(examples) < kc.maxExamples {
		examples[key] = struct{}{}
	}
	return c
}

func (kc *KeyCounter) Count(c mapping.Category) int64 {
	return kc.counts[c]
}

// Examples returns the sorted example keys of c.
func (kc *KeyCounter) Examples(c mapping.Category) []string {
	return sortedKeys(kc.examples[c])
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
