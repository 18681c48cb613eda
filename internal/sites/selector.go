package sites

import (
	"strings"
)

// selectorKind discriminates the Selector variants.
type selectorKind int

const (
	kindNone  selectorKind = iota
	kindExact              // single class name, exact match
	kindAnyOf              // list of alternatives, OR semantics
	kindAllOf              // predicate, all classes must be present
)

// Selector describes how a rule matches an element's class attribute.
// Listing markup is wildly inconsistent across sites: some cards carry a
// single stable class, some one of several generated names, and some are
// only identifiable by a combination of utility classes. The three
// variants cover those shapes with a single matching function.
type Selector struct {
	kind  selectorKind
	names []string
}

// Exact matches elements whose class list contains exactly this name.
func Exact(name string) Selector {
	return Selector{kind: kindExact, names: []string{name}}
}

// AnyOf matches elements whose class list intersects any of the given
// names. Alternatives are tried in declared order by scoped lookups.
func AnyOf(names ...string) Selector {
	return Selector{kind: kindAnyOf, names: names}
}

// AllOf matches elements carrying every one of the given names.
func AllOf(names ...string) Selector {
	return Selector{kind: kindAllOf, names: names}
}

// IsZero reports whether no class filtering was requested.
func (s Selector) IsZero() bool { return s.kind == kindNone }

// Alternatives returns the class names to try, in declared order, for
// first-match-wins scoped lookups. AllOf selectors have no meaningful
// ordering and return nil.
func (s Selector) Alternatives() []string {
	switch s.kind {
	case kindExact, kindAnyOf:
		return s.names
	default:
		return nil
	}
}

// Matches reports whether a space-separated class attribute value
// satisfies this selector. A zero selector matches everything.
func (s Selector) Matches(classAttr string) bool {
	if s.kind == kindNone {
		return true
	}

	classes := strings.Fields(classAttr)

	switch s.kind {
	case kindExact, kindAnyOf:
		for _, want := range s.names {
			for _, have := range classes {
				if have == want {
					return true
				}
			}
		}
		return false
	case kindAllOf:
		for _, want := range s.names {
			found := false
			for _, have := range classes {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}

// MatchesOne reports whether the class attribute contains the single
// given class name. Used by scoped lookups iterating Alternatives.
func MatchesOne(classAttr, name string) bool {
	for _, have := range strings.Fields(classAttr) {
		if have == name {
			return true
		}
	}
	return false
}
