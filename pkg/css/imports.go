package css

import "strings"

// ScanImports extracts @import references from a stylesheet body.
//
// This is a lexical scan, not a CSS parse: it recognizes the two syntactic
// forms `@import "href"` / `@import 'href'` and `@import url(href)`, skips
// block comments, and stops caring about anything past the reference (media
// conditions on the import are ignored). Good enough for the loader to fan
// nested imports out as their own sub-loads.
func ScanImports(body string) []string {
	var refs []string
	s := stripComments(body)
	for {
		i := strings.Index(s, "@import")
		if i < 0 {
			break
		}
		s = s[i+len("@import"):]
		ref, rest, ok := scanImportRef(s)
		s = rest
		if !ok || ref == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// scanImportRef reads one import reference from the text following an
// @import keyword. Returns the reference, the remaining text, and whether a
// reference was recognized.
func scanImportRef(s string) (string, string, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return "", s, false
	}

	switch s[0] {
	case '"', '\'':
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return "", "", false
		}
		return s[1 : 1+end], s[2+end:], true
	case 'u', 'U':
		rest, ok := cutFold(s, "url(")
		if !ok {
			return "", s, false
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return "", "", false
		}
		ref := strings.TrimSpace(rest[:end])
		ref = strings.Trim(ref, `"'`)
		return ref, rest[end+1:], true
	}
	return "", s, false
}

// cutFold strips an ASCII case-insensitive prefix.
func cutFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// stripComments removes /* */ comments so commented-out imports are not
// picked up.
func stripComments(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		end := strings.Index(s[i+2:], "*/")
		if end < 0 {
			return b.String()
		}
		s = s[i+2+end+2:]
	}
}
