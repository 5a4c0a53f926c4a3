package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/match"
)

// Matcher reports whether a field text satisfies a compiled pattern.
type Matcher interface {
	Match(text string) bool
}

type MatchFunc func(string) bool

func (f MatchFunc) Match(text string) bool {
	return f(text)
}

// Compile builds the matcher of pattern in mode. Only Regex patterns can be
// malformed; they fail with ErrInvalidPattern.
func Compile(pattern string, mode Mode, caseSensitive bool) (Matcher, error) {
	switch mode {
	case Contains:
		if caseSensitive {
			return MatchFunc(func(s string) bool { return strings.Contains(s, pattern) }), nil
		}
		lp := strings.ToLower(pattern)
		return MatchFunc(func(s string) bool { return strings.Contains(strings.ToLower(s), lp) }), nil
	case Wildcard:
		if caseSensitive {
			return MatchFunc(func(s string) bool { return match.Match(s, pattern) }), nil
		}
		lp := strings.ToLower(pattern)
		return MatchFunc(func(s string) bool { return match.Match(strings.ToLower(s), lp) }), nil
	case Regex:
		expr := `^(?:` + pattern + `)$`
		if !caseSensitive {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		return MatchFunc(re.MatchString), nil
	case FixedString:
		if caseSensitive {
			return MatchFunc(func(s string) bool { return s == pattern }), nil
		}
		lp := strings.ToLower(pattern)
		return MatchFunc(func(s string) bool { return strings.ToLower(s) == lp }), nil
	}
	return nil, fmt.Errorf("%w: mode %d", ErrInvalidFilter, mode)
}
