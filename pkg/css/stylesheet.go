package css

import "net/url"

// Stylesheet is an opaque handle to a loaded stylesheet.
//
// The coordinator never looks inside it; it only installs it into the owning
// element's resource slot and registers it with the document. The body is
// kept verbatim, plus the import references the loader discovered while
// fetching it.
type Stylesheet struct {
	url     *url.URL
	media   *MediaList
	body    string
	imports []string
}

// NewStylesheet creates a stylesheet handle for a fetched body.
// Import references are extracted once, at construction.
func NewStylesheet(u *url.URL, body string) *Stylesheet {
	return &Stylesheet{
		url:     u,
		body:    body,
		imports: ScanImports(body),
	}
}

// WithMedia attaches the media descriptor the stylesheet was requested under.
func (s *Stylesheet) WithMedia(m *MediaList) *Stylesheet {
	s.media = m
	return s
}

// URL returns the URL the stylesheet was fetched from.
func (s *Stylesheet) URL() *url.URL {
	return s.url
}

// Media returns the media descriptor, or nil if none was attached.
func (s *Stylesheet) Media() *MediaList {
	return s.media
}

// Body returns the raw stylesheet text.
func (s *Stylesheet) Body() string {
	return s.body
}

// Imports returns the import references found in the body, as written.
func (s *Stylesheet) Imports() []string {
	return s.imports
}
