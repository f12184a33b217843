package dom

import "strings"

// CORSMode is the CORS setting extracted from a crossorigin attribute.
type CORSMode int

const (
	// CORSNone means the attribute is absent; the fetch is not a CORS fetch.
	CORSNone CORSMode = iota
	// CORSAnonymous requests without credentials.
	CORSAnonymous
	// CORSUseCredentials requests with credentials.
	CORSUseCredentials
)

// String returns the mode's attribute keyword, or "" for CORSNone.
func (m CORSMode) String() string {
	switch m {
	case CORSAnonymous:
		return "anonymous"
	case CORSUseCredentials:
		return "use-credentials"
	default:
		return ""
	}
}

// CORSModeFor extracts the CORS setting from an element's crossorigin
// attribute: absent means no CORS, the value "use-credentials" means
// credentialed, and any other value (including empty) means anonymous.
func CORSModeFor(el *Element) CORSMode {
	value, ok := el.Attr("crossorigin")
	if !ok {
		return CORSNone
	}
	if strings.EqualFold(value, "use-credentials") {
		return CORSUseCredentials
	}
	return CORSAnonymous
}

// ParseCORSMode maps an attribute keyword to a CORSMode, for callers that
// carry the value outside an element (e.g. CLI flags).
func ParseCORSMode(value string) CORSMode {
	switch strings.ToLower(value) {
	case "":
		return CORSNone
	case "use-credentials":
		return CORSUseCredentials
	default:
		return CORSAnonymous
	}
}
