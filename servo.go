// Package servo provides the public API for the link resource load
// coordinator.
//
// This is the recommended import for most applications:
//
//	import "github.com/dwijnand/servo"
//
// Usage:
//
//	doc, _ := servo.NewDocument("https://example.com/page")
//	el := servo.NewLink(doc, loader, servo.ParserInserted())
//	el.Node().SetAttr("rel", "stylesheet")
//	el.Node().SetAttr("href", "/styles/site.css")
//	el.Node().Attach()
package servo

import (
	"log/slog"

	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/dom"
	"github.com/dwijnand/servo/pkg/embedder"
	"github.com/dwijnand/servo/pkg/link"
	"github.com/dwijnand/servo/pkg/loader"
)

// =============================================================================
// Document (dom.Document exposed as servo.Document)
// =============================================================================

// Document is the owning document: base URL, execution context, stylesheet
// registry, and the embedder channel for icon notices.
type Document = dom.Document

// DocumentOption configures a Document.
type DocumentOption = dom.DocumentOption

// NewDocument creates a document rooted at the given absolute base URL.
func NewDocument(baseURL string, opts ...DocumentOption) (*Document, error) {
	return dom.NewDocument(baseURL, opts...)
}

// WithDocumentLogger sets the document's logger.
func WithDocumentLogger(logger *slog.Logger) DocumentOption {
	return dom.WithLogger(logger)
}

// WithEmbedder sets the channel that receives icon notices.
func WithEmbedder(ch embedder.Channel) DocumentOption {
	return dom.WithEmbedder(ch)
}

// NotTopLevel marks the document as embedded content. Embedded documents
// suppress icon notices.
func NotTopLevel() DocumentOption {
	return dom.NotTopLevel()
}

// WithoutBrowsingContext marks the document as detached from any browsing
// context. Such documents never issue stylesheet loads.
func WithoutBrowsingContext() DocumentOption {
	return dom.WithoutBrowsingContext()
}

// =============================================================================
// Link element
// =============================================================================

// Link is a link element wired into a document: it watches its node's
// rel/href/sizes attributes and coordinates resource loads.
type Link = link.Element

// LinkOption configures a Link.
type LinkOption = link.Option

// NewLink creates a link element in doc, loading through the given loader.
// The returned element owns a fresh detached node; set attributes on
// Node() and call Node().Attach() to insert it.
func NewLink(doc *Document, l Loader, opts ...LinkOption) *Link {
	return link.New(doc, l, opts...)
}

// ParserInserted marks the element as parser-created, which makes its
// stylesheet loads block the document.
func ParserInserted() LinkOption {
	return link.ParserInserted()
}

// WithMonitor attaches a monitor to the element.
func WithMonitor(m Monitor) LinkOption {
	return link.WithMonitor(m)
}

// WithLinkLogger sets the element's logger.
func WithLinkLogger(logger *slog.Logger) LinkOption {
	return link.WithLogger(logger)
}

// =============================================================================
// Loading
// =============================================================================

// Loader obtains stylesheets on behalf of link elements.
type Loader = link.Loader

// Owner is the loader's view of the element that issued a request.
type Owner = link.Owner

// LoaderFunc adapts a function to a Loader.
type LoaderFunc = link.LoaderFunc

// Request carries everything a loader needs to obtain a stylesheet.
type Request = link.Request

// GenerationID tags each load request; completions carrying a superseded
// generation are discarded.
type GenerationID = link.GenerationID

// Monitor observes coordinator activity. pkg/observe provides Prometheus
// and OpenTelemetry implementations.
type Monitor = link.Monitor

// MultiMonitor combines monitors into one. Nil entries are skipped.
func MultiMonitor(monitors ...Monitor) Monitor {
	return link.MultiMonitor(monitors...)
}

// NewHTTPLoader creates a loader that fetches over http(s).
func NewHTTPLoader(opts ...loader.HTTPOption) Loader {
	return loader.NewHTTP(opts...)
}

// =============================================================================
// Stylesheets
// =============================================================================

// Stylesheet is a fetched stylesheet resource.
type Stylesheet = css.Stylesheet

// SheetView is the object-model wrapper lazily built over an element's
// current stylesheet.
type SheetView = css.SheetView

// MediaList is a parsed media descriptor.
type MediaList = css.MediaList

// ParseMediaQuery parses a media attribute value.
func ParseMediaQuery(text string) *MediaList {
	return css.ParseMediaQuery(text)
}

// =============================================================================
// Embedder
// =============================================================================

// Icon is a favicon notice delivered to the embedder.
type Icon = embedder.Icon

// EmbedderChannel receives embedder notices from documents.
type EmbedderChannel = embedder.Channel
