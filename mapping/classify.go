package mapping

import (
	"regexp"
	"strings"
)

type Category int

const (
	// Plain keys only contain lowercase letters and underscores.
	Plain Category = iota
	// Namespaced keys are two plain keys joined by a single colon.
	Namespaced
	// Problem keys contain at least one problem character.
	Problem
	Other
)

var Categories = []Category{Plain, Namespaced, Problem, Other}

func (c Category) String() string {
	switch c {
	case Plain:
		return "plain"
	case Namespaced:
		return "namespaced"
	case Problem:
		return "problem"
	case Other:
		return "other"
	}
	return "unknown"
}

// ProblemChars are characters that make a key unsuitable for storage.
const ProblemChars = "=+/&<>;'\"?%#$@,. \t\r\n"

var (
	plainKey      = regexp.MustCompile(`^[a-z_]*$`)
	namespacedKey = regexp.MustCompile(`^[a-z_]*:[a-z_]*$`)
)

// HasProblemChars returns whether key contains any of the ProblemChars.
func HasProblemChars(key string) bool {
	return strings.ContainsAny(key, ProblemChars)
}

// Classify returns the category of key. The first matching category of
// Plain, Namespaced, Problem and Other is returned.
func Classify(key string) Category {
	switch {
	case plainKey.MatchString(key):
		return Plain
	case namespacedKey.MatchString(key):
		return Namespaced
	case HasProblemChars(key):
		return Problem
	default:
		return Other
	}
}
