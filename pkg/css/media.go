package css

import "strings"

// MediaList is an opaque media descriptor parsed from a media attribute.
//
// It records the individual queries without interpreting them; evaluation
// against a viewport is out of scope here and belongs to whoever consumes
// the descriptor.
type MediaList struct {
	raw     string
	queries []string
}

// ParseMediaQuery tokenizes a media attribute value into a MediaList.
// An empty or all-whitespace value yields a descriptor with no queries,
// which conventionally matches everything.
func ParseMediaQuery(text string) *MediaList {
	m := &MediaList{raw: text}
	for _, q := range splitTopLevel(text, ',') {
		q = strings.TrimSpace(q)
		if q != "" {
			m.queries = append(m.queries, q)
		}
	}
	return m
}

// Text returns the original attribute value.
func (m *MediaList) Text() string {
	return m.raw
}

// Queries returns the individual trimmed queries.
func (m *MediaList) Queries() []string {
	return m.queries
}

// Len returns the number of queries.
func (m *MediaList) Len() int {
	return len(m.queries)
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// parentheses, so "screen and (min-width: 300px), print" splits into two.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
