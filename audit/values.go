package audit

import (
	"regexp"
	"sort"

	"github.com/omniscale/osmcsv/mapping"
)

var streetTypeRe = regexp.MustCompile(`\b\S+\.?$`)

// StreetTypes collects street names with an unexpected street type.
type StreetTypes struct {
	rules *mapping.Rules
	names map[string]map[string]struct{}
}

func NewStreetTypes(rules *mapping.Rules) *StreetTypes {
	return &StreetTypes{rules: rules, names: make(map[string]map[string]struct{})}
}

// Add checks the last word of name and records name if the word is not an
// expected street type.
func (st *StreetTypes) Add(name string) {
	streetType := streetTypeRe.FindString(name)
	if streetType == "" || st.rules.IsExpectedStreetType(streetType) {
		return
	}
	names, ok := st.names[streetType]
	if !ok {
		names = make(map[string]struct{})
		st.names[streetType] = names
	}
	names[name] = struct{}{}
}

// Types returns all unexpected street types, sorted.
func (st *StreetTypes) Types() []string {
	types := make([]string, 0, len(st.names))
	for t := range st.names {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Names returns the sorted street names with streetType.
func (st *StreetTypes) Names(streetType string) []string {
	return sortedKeys(st.names[streetType])
}

// ValueCounter counts the values of a single tag key.
type ValueCounter struct {
	Key    string
	counts map[string]int64
}

func NewValueCounter(key string) *ValueCounter {
	return &ValueCounter{Key: key, counts: make(map[string]int64)}
}

func (vc *ValueCounter) Add(value string) {
	vc.counts[value]++
}

type ValueCount struct {
	Value string
	Count int64
}

// Counts returns all values, most frequent first.
func (vc *ValueCounter) Counts() []ValueCount {
	result := make([]ValueCount, 0, len(vc.counts))
	for v, n := range vc.counts {
		result = append(result, ValueCount{v, n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result
}

// Unique returns the number of distinct values.
func (vc *ValueCounter) Unique() int {
	return len(vc.counts)
}
