// Package matching locates columns in exports whose headers are not fixed.
// Columns are found by scanning headers in order against a prioritized list
// of rules: exact candidate names, then substring matches, with a
// positional fallback when nothing matches.
package matching

import "strings"

// Rule decides whether a normalized (trimmed, lower-cased) header name
// identifies the wanted column.
type Rule func(header string) bool

// Exact matches any of the given candidate names.
func Exact(candidates ...string) Rule {
	set := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		set[c] = struct{}{}
	}
	return func(header string) bool {
		_, ok := set[header]
		return ok
	}
}

// Contains matches headers containing any of the given substrings.
func Contains(substrings ...string) Rule {
	return func(header string) bool {
		for _, sub := range substrings {
			if strings.Contains(header, sub) {
				return true
			}
		}
		return false
	}
}

// FindColumn scans headers left to right and returns the index of the
// first one satisfying any rule. When no header matches, fallback is
// returned, clamped into range for non-empty header sets.
func FindColumn(headers []string, fallback int, rules ...Rule) int {
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, rule := range rules {
			if rule(name) {
				return i
			}
		}
	}
	if fallback >= len(headers) && len(headers) > 0 {
		return 0
	}
	return fallback
}
