package dom

// AttributeMutation describes one attribute change on an element.
type AttributeMutation struct {
	// Name is the attribute's local name.
	Name string
	// Value is the new value. Empty when Removed.
	Value string
	// Old is the previous value, if the attribute existed.
	Old string
	// Removed is true when the mutation removed the attribute.
	Removed bool
}

// Element is a markup element: a tag name, an attribute set, an ordered list
// of mutation observers, and explicit attach/detach lifecycle hooks.
//
// Observers registered first run first, so base behaviors go before
// specialized ones, replacing a superclass-chained dispatch with an explicit
// ordered list.
type Element struct {
	doc *Document
	tag string

	attrs map[string]string

	mutationObservers []func(AttributeMutation)
	attachHooks       []func()
	detachHooks       []func()

	inDocument bool
}

// CreateElement creates a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:   d,
		tag:   tag,
		attrs: make(map[string]string),
	}
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// Attr returns an attribute value and whether the attribute is present.
func (e *Element) Attr(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

// AttrOr returns an attribute value, or fallback if absent.
func (e *Element) AttrOr(name, fallback string) string {
	if value, ok := e.attrs[name]; ok {
		return value
	}
	return fallback
}

// SetAttr sets an attribute and dispatches the mutation to observers.
func (e *Element) SetAttr(name, value string) {
	old := e.attrs[name]
	e.attrs[name] = value
	e.dispatchMutation(AttributeMutation{Name: name, Value: value, Old: old})
}

// RemoveAttr removes an attribute, if present, and dispatches the mutation
// with removal semantics.
func (e *Element) RemoveAttr(name string) {
	old, ok := e.attrs[name]
	if !ok {
		return
	}
	delete(e.attrs, name)
	e.dispatchMutation(AttributeMutation{Name: name, Old: old, Removed: true})
}

// TokenList returns a live token-list view over a space-separated attribute.
func (e *Element) TokenList(attr string) TokenList {
	return TokenList{el: e, attr: attr}
}

// OnAttributeMutated appends an observer called for every attribute change.
func (e *Element) OnAttributeMutated(fn func(AttributeMutation)) {
	e.mutationObservers = append(e.mutationObservers, fn)
}

// OnAttached appends a hook invoked after the element joins the document tree.
func (e *Element) OnAttached(fn func()) {
	e.attachHooks = append(e.attachHooks, fn)
}

// OnDetached appends a hook invoked after the element leaves the document tree.
func (e *Element) OnDetached(fn func()) {
	e.detachHooks = append(e.detachHooks, fn)
}

// InDocument reports whether the element is part of the document tree.
func (e *Element) InDocument() bool {
	return e.inDocument
}

// Attach inserts the element into the document tree and fires attach hooks.
// Attaching an already attached element is a no-op.
func (e *Element) Attach() {
	if e.inDocument {
		return
	}
	e.inDocument = true
	for _, fn := range e.attachHooks {
		fn()
	}
}

// Detach removes the element from the document tree and fires detach hooks.
// Detaching an already detached element is a no-op.
func (e *Element) Detach() {
	if !e.inDocument {
		return
	}
	e.inDocument = false
	for _, fn := range e.detachHooks {
		fn()
	}
}

func (e *Element) dispatchMutation(m AttributeMutation) {
	for _, fn := range e.mutationObservers {
		fn(m)
	}
}
