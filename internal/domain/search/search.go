// Package search looks employees up by identifier and proposes near matches.
package search

import "strings"

// Defaults for suggestion lookups.
const (
	DefaultPrefixLength    = 8
	DefaultSuggestionLimit = 5
)

// Identified is anything keyed by an identifier string.
type Identified interface {
	Identifier() string
}

// FindByIdentifier returns every record whose identifier contains query as a
// case-sensitive substring, in input order. No match yields an empty slice.
func FindByIdentifier[T Identified](records []T, query string) []T {
	out := make([]T, 0)
	for _, r := range records {
		if strings.Contains(r.Identifier(), query) {
			out = append(out, r)
		}
	}
	return out
}

// SuggestionPrefix returns the first DefaultPrefixLength characters of query,
// or query itself when it is shorter.
func SuggestionPrefix(query string) string {
	runes := []rune(query)
	if len(runes) <= DefaultPrefixLength {
		return query
	}
	return string(runes[:DefaultPrefixLength])
}

// Suggest returns up to limit identifiers containing the suggestion prefix of query.
// A non-positive limit uses DefaultSuggestionLimit.
func Suggest[T Identified](records []T, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	prefix := SuggestionPrefix(query)
	out := make([]string, 0, limit)
	for _, r := range records {
		if len(out) == limit {
			break
		}
		if id := r.Identifier(); strings.Contains(id, prefix) {
			out = append(out, id)
		}
	}
	return out
}

// Result is the outcome of a lookup.
type Result[T Identified] struct {
	Query       string
	Matches     []T
	Suggestions []string
}

// Found reports whether at least one record matched.
func (r Result[T]) Found() bool { return len(r.Matches) > 0 }

// First returns the first match.
func (r Result[T]) First() (T, bool) {
	var zero T
	if len(r.Matches) == 0 {
		return zero, false
	}
	return r.Matches[0], true
}

// Lookup finds matches for query and, when there are none, fills suggestions.
func Lookup[T Identified](records []T, query string, limit int) Result[T] {
	res := Result[T]{Query: query, Matches: FindByIdentifier(records, query)}
	if !res.Found() {
		res.Suggestions = Suggest(records, query, limit)
	}
	return res
}
