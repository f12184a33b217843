package dom

import "strings"

// htmlWhitespace is the set of ASCII whitespace characters HTML uses to
// delimit tokens in space-separated attribute values.
const htmlWhitespace = " \t\n\f\r"

// SplitTokens splits a space-separated attribute value into tokens.
func SplitTokens(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(htmlWhitespace, r)
	})
}

// TokenList is a live view over a space-separated token attribute of an
// element, such as rel. Token comparison is ASCII case-insensitive, matching
// how link relations are defined.
type TokenList struct {
	el   *Element
	attr string
}

// Tokens returns the current tokens, in attribute order.
func (t TokenList) Tokens() []string {
	value, _ := t.el.Attr(t.attr)
	return SplitTokens(value)
}

// Contains reports whether the list contains the token, ignoring ASCII case.
func (t TokenList) Contains(token string) bool {
	for _, have := range t.Tokens() {
		if strings.EqualFold(have, token) {
			return true
		}
	}
	return false
}

// ContainsTokens reports whether a raw attribute value contains the token,
// ignoring ASCII case. Used when routing on an attribute string directly.
func ContainsTokens(value, token string) bool {
	for _, have := range SplitTokens(value) {
		if strings.EqualFold(have, token) {
			return true
		}
	}
	return false
}
