package link

import "github.com/dwijnand/servo/pkg/css"

// resourceSlot holds the authoritative loaded stylesheet for an element,
// plus the lazily built presentation wrapper derived from it. The wrapper
// cache is invalidated whenever the sheet is replaced or cleared.
type resourceSlot struct {
	sheet *css.Stylesheet
	view  *css.SheetView
}

// setStylesheet swaps the installed stylesheet: the previous one is
// deregistered from the document before the new one is registered, and the
// cached view is dropped.
func (e *Element) setStylesheet(sheet *css.Stylesheet) {
	if prev := e.slot.sheet; prev != nil {
		e.doc.RemoveStylesheet(e, prev)
	}
	e.slot.sheet = sheet
	e.slot.view = nil
	e.doc.AddStylesheet(e, sheet)
}

// clearStylesheet releases the installed stylesheet, if any, deregistering
// it from the document. Used when the element leaves the tree.
func (e *Element) clearStylesheet() {
	if e.slot.sheet == nil {
		return
	}
	e.doc.RemoveStylesheet(e, e.slot.sheet)
	e.slot.sheet = nil
	e.slot.view = nil
}

// SheetView returns the presentation wrapper over the installed stylesheet,
// building it on first use and reusing it until the sheet changes. Returns
// nil while no stylesheet is installed.
func (e *Element) SheetView() *css.SheetView {
	if e.slot.sheet == nil {
		return nil
	}
	if e.slot.view == nil {
		e.slot.view = css.NewSheetView(e.slot.sheet)
	}
	return e.slot.view
}

// SetOriginClean propagates the response origin cleanliness onto the cached
// presentation wrapper, if one has been built.
func (e *Element) SetOriginClean(clean bool) {
	if v := e.SheetView(); v != nil {
		v.SetOriginClean(clean)
	}
}
