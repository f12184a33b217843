package link

import (
	"log/slog"

	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/dom"
)

// Element is a link element plus its load coordination state.
//
// Everything here is mutated on the owning document's execution context
// only; see the package comment for the threading contract.
type Element struct {
	node   *dom.Element
	doc    *dom.Document
	loader Loader

	monitor Monitor
	logger  *slog.Logger

	// parserInserted is fixed at construction and decides whether this
	// element's loads block the document.
	parserInserted bool

	// generation is the id of the most recent stylesheet-load request.
	generation GenerationID

	// batches holds the pending-load tracker of every generation with
	// outstanding sub-loads, keyed by the generation that started it.
	batches map[GenerationID]*batch

	slot resourceSlot
}

// Option configures a link Element.
type Option func(*Element)

// ParserInserted marks the element as created by the parser; its stylesheet
// loads then block the document per the load-blocking protocol.
func ParserInserted() Option {
	return func(e *Element) {
		e.parserInserted = true
	}
}

// WithMonitor attaches a Monitor to the element's coordinator.
func WithMonitor(m Monitor) Option {
	return func(e *Element) {
		if m != nil {
			e.monitor = m
		}
	}
}

// WithLogger overrides the document's logger for this element.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Element) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates a link element in the given document, wired to the loader.
// The element starts detached; call Node().Attach() to insert it into the
// document tree.
func New(doc *dom.Document, loader Loader, opts ...Option) *Element {
	e := &Element{
		node:    doc.CreateElement("link"),
		doc:     doc,
		loader:  loader,
		monitor: NopMonitor{},
		logger:  doc.Logger(),
		batches: make(map[GenerationID]*batch),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Base attribute behavior lives in dom.Element; the coordinator's
	// router is appended after it.
	e.node.OnAttributeMutated(e.attributeMutated)
	e.node.OnAttached(e.attached)
	e.node.OnDetached(e.detached)
	return e
}

// Node returns the underlying document element.
func (e *Element) Node() *dom.Element {
	return e.node
}

// OwnerElement implements dom.StylesheetOwner.
func (e *Element) OwnerElement() *dom.Element {
	return e.node
}

// Blocking reports whether this element's loads block the document.
// Fixed at construction time.
func (e *Element) Blocking() bool {
	return e.parserInserted
}

// Generation returns the id of the most recent stylesheet-load request.
func (e *Element) Generation() GenerationID {
	return e.generation
}

// beginNewRequest issues the next generation id. Called exactly once per
// stylesheet-load initiation.
func (e *Element) beginNewRequest() GenerationID {
	e.generation = e.generation.Next()
	return e.generation
}

// IsAlternate reports whether rel marks this as an alternate stylesheet.
func (e *Element) IsAlternate() bool {
	return e.node.TokenList("rel").Contains("alternate")
}

// ReferrerPolicy derives the referrer policy from the rel attribute.
func (e *Element) ReferrerPolicy() ReferrerPolicy {
	if e.node.TokenList("rel").Contains("noreferrer") {
		return ReferrerNone
	}
	return ReferrerDefault
}

// Stylesheet returns the currently installed stylesheet, or nil.
func (e *Element) Stylesheet() *css.Stylesheet {
	return e.slot.sheet
}

// PostTask implements Owner by scheduling fn on the owning document's
// execution context.
func (e *Element) PostTask(fn func()) {
	e.doc.Post(fn)
}
