// Package css holds the stylesheet-side types consumed by the link load
// coordinator: the opaque loaded-stylesheet handle, the media descriptor
// boundary, and the CSSOM-style presentation view.
//
// This package deliberately does NOT parse CSS. The media "parser" only
// tokenizes the attribute string into an opaque descriptor, and the import
// scanner is a lexical shim that stands in for the external CSS parser's
// import discovery. Everything else about the language belongs to the
// loader's parsing collaborator.
package css
