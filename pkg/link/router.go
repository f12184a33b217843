package link

import (
	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/dom"
	"github.com/dwijnand/servo/pkg/embedder"
)

// relIndicatesStylesheet reports whether a rel value selects the stylesheet
// protocol. Alternate stylesheets still load; being alternate only affects
// presentation, not the protocol choice.
func relIndicatesStylesheet(rel string) bool {
	return dom.ContainsTokens(rel, "stylesheet")
}

// relIndicatesIcon reports whether a rel value selects the icon protocol.
// Only the icon URL is consumed by the embedder.
func relIndicatesIcon(rel string) bool {
	return dom.ContainsTokens(rel, "icon") || dom.ContainsTokens(rel, "apple-touch-icon")
}

// attributeMutated re-evaluates protocol intent after an attribute change.
// The decision always looks at the element's current full attribute set, not
// just the changed attribute. Mutations with removal semantics never re-run
// a protocol, and nothing happens while the element is outside the tree.
func (e *Element) attributeMutated(m dom.AttributeMutation) {
	if !e.node.InDocument() || m.Removed {
		return
	}

	rel := e.node.AttrOr("rel", "")
	switch m.Name {
	case "href":
		if relIndicatesStylesheet(rel) {
			e.handleStylesheetURL(m.Value)
		} else if relIndicatesIcon(rel) {
			e.handleIconURL(m.Value, e.node.AttrOr("sizes", ""))
		}
	case "sizes":
		if relIndicatesIcon(rel) {
			if href, ok := e.node.Attr("href"); ok {
				e.handleIconURL(href, m.Value)
			}
		}
	}
}

// attached runs protocol selection when the element joins the document tree.
func (e *Element) attached() {
	rel := e.node.AttrOr("rel", "")
	href, ok := e.node.Attr("href")
	if !ok {
		return
	}

	switch {
	case relIndicatesStylesheet(rel):
		e.handleStylesheetURL(href)
	case relIndicatesIcon(rel):
		e.handleIconURL(href, e.node.AttrOr("sizes", ""))
	}
}

// detached releases the resource slot when the element leaves the tree.
// Outstanding batches keep accounting their completions, but their results
// can no longer install.
func (e *Element) detached() {
	e.clearStylesheet()
}

// handleStylesheetURL starts the stylesheet-load protocol for an href value.
// An empty or unresolvable href is a silent no-op: no generation bump, no
// loader call, indistinguishable from "no link requested".
func (e *Element) handleStylesheetURL(href string) {
	if !e.doc.HasBrowsingContext() {
		return
	}
	if href == "" {
		return
	}

	u, err := e.doc.ResolveURL(href)
	if err != nil {
		e.logger.Debug("stylesheet href did not resolve", "href", href, "error", err)
		return
	}

	media := css.ParseMediaQuery(e.node.AttrOr("media", ""))
	req := Request{
		URL:        u,
		Media:      media,
		CORS:       dom.CORSModeFor(e.node),
		Integrity:  e.node.AttrOr("integrity", ""),
		Referrer:   e.ReferrerPolicy(),
		Generation: e.beginNewRequest(),
	}

	e.doc.NoteBlockingLoadStarted(e)
	e.monitor.RequestStarted(req.Generation, u)
	e.logger.Debug("stylesheet load requested",
		"url", u.String(),
		"generation", uint32(req.Generation),
		"cors", req.CORS.String(),
		"referrer", req.Referrer.String())

	e.loader.Load(req, e)
}

// handleIconURL runs the icon-notification protocol for an href value. The
// sizes value is carried through to the notice but no size-based selection
// happens here. Notices fire only for top-level browsing contexts and never
// touch the generation counter.
func (e *Element) handleIconURL(href, sizes string) {
	u, err := e.doc.ResolveURL(href)
	if err != nil {
		e.logger.Debug("icon href did not resolve", "href", href, "error", err)
		return
	}
	if !e.doc.TopLevel() {
		return
	}

	e.doc.NotifyIcon(embedder.Icon{URL: u, Sizes: sizes})
	e.monitor.IconNotified(u)
}
