// Package filter excludes files from packing based on glob patterns with
// find -path semantics: unlike filepath.Match, * and ? also match the path
// separator, so "vendor/*" covers arbitrarily deep subtrees.
package filter

import (
	"fmt"
)

// Matcher holds pre-validated exclude patterns for reuse across many paths.
type Matcher struct {
	patterns []string
}

// NewMatcher validates the given patterns and returns a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	for _, p := range patterns {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	return &Matcher{patterns: patterns}, nil
}

// MatchAny reports whether path matches any of the patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, p := range m.patterns {
		if match(p, path) {
			return true
		}
	}

	return false
}

// validate rejects patterns that cannot be matched: a trailing backslash or an
// unclosed character class.
func validate(pattern string) error {
	for pos := 0; pos < len(pattern); pos++ {
		switch pattern[pos] {
		case '\\':
			if pos+1 >= len(pattern) {
				return fmt.Errorf("trailing backslash")
			}

			pos++

		case '[':
			end, err := closingBracket(pattern, pos)
			if err != nil {
				return err
			}

			pos = end
		}
	}

	return nil
}

// match implements iterative glob matching with backtracking over the last *.
// Patterns must have passed validate.
func match(pattern, path string) bool {
	var pIdx, sIdx int

	starIdx, starNext := -1, 0

	for sIdx < len(path) {
		if pIdx < len(pattern) && pattern[pIdx] == '*' {
			starIdx, starNext = pIdx, sIdx
			pIdx++

			continue
		}

		if pIdx < len(pattern) {
			if n, ok := matchSingle(pattern, pIdx, path[sIdx]); ok {
				pIdx += n
				sIdx++

				continue
			}
		}

		if starIdx >= 0 {
			starNext++
			pIdx = starIdx + 1
			sIdx = starNext

			continue
		}

		return false
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// matchSingle matches one path byte against the pattern element at p,
// returning the element's width in pattern bytes.
func matchSingle(pattern string, p int, c byte) (int, bool) {
	switch pattern[p] {
	case '?':
		return 1, true

	case '[':
		end, _ := closingBracket(pattern, p)

		return end - p + 1, classMatch(pattern[p+1:end], c)

	case '\\':
		return 2, pattern[p+1] == c

	default:
		return 1, pattern[p] == c
	}
}

// classMatch matches c against a character class body (without brackets),
// supporting ranges and leading ! negation.
func classMatch(class string, c byte) bool {
	negate := false

	if len(class) > 0 && class[0] == '!' {
		negate = true
		class = class[1:]
	}

	matched := false

	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
			}

			i += 2

			continue
		}

		if class[i] == c {
			matched = true
		}
	}

	return matched != negate
}

// closingBracket finds the index of the closing ] for a class starting at pos.
// A leading ! or ] is part of the class body.
func closingBracket(pattern string, pos int) (int, error) {
	idx := pos + 1

	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	for ; idx < len(pattern); idx++ {
		if pattern[idx] == ']' {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unclosed character class")
}
