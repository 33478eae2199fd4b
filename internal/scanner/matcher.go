package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// registrationPatternTemplate is the boundary pattern shared by all
// categories: a subroutine-call prefix for one of the category's known
// addresses, a run of characters that is neither a semicolon nor a brace,
// the terminating semicolon, and one trailing non-quote character. It is a
// call-boundary detector, not a grammar, and relies on the preprocessor
// having removed in-literal semicolons. Hex addresses appear in mixed
// case, so matching is case-insensitive.
const registrationPatternTemplate = `(?i)sub_(%s)[^;{}]+;[^"]`

// Match is one raw registration-call span in the preprocessed buffer
type Match struct {
	Start int
	End   int
}

// Matcher holds one compiled boundary pattern per entity category
type Matcher struct {
	patterns map[types.Category]*regexp.Regexp
}

// NewMatcher compiles boundary patterns from a category address registry
func NewMatcher(registry map[types.Category][]string) (*Matcher, error) {
	m := &Matcher{patterns: make(map[types.Category]*regexp.Regexp, len(registry))}
	for category, addresses := range registry {
		if len(addresses) == 0 {
			return nil, fmt.Errorf("category %s has no registration addresses", category)
		}
		pattern := fmt.Sprintf(registrationPatternTemplate, strings.Join(addresses, "|"))
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", category, err)
		}
		m.patterns[category] = compiled
	}
	return m, nil
}

// Matches returns the ordered registration-call spans for one category
func (m *Matcher) Matches(buf []byte, category types.Category) []Match {
	pattern, ok := m.patterns[category]
	if !ok {
		return nil
	}
	spans := pattern.FindAllIndex(buf, -1)
	matches := make([]Match, 0, len(spans))
	for _, span := range spans {
		matches = append(matches, Match{Start: span[0], End: span[1]})
	}
	return matches
}
