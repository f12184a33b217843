package css

// SheetView is the presentation-layer wrapper over a loaded stylesheet,
// mirroring what a CSSOM CSSStyleSheet exposes about its underlying sheet.
//
// Views are built lazily by the owning element's resource slot and cached
// for as long as the underlying stylesheet is unchanged.
type SheetView struct {
	sheet       *Stylesheet
	contentType string
	title       string
	disabled    bool
	originClean bool
}

// NewSheetView wraps a stylesheet in a presentation view.
func NewSheetView(sheet *Stylesheet) *SheetView {
	return &SheetView{
		sheet:       sheet,
		contentType: "text/css",
		originClean: true,
	}
}

// Sheet returns the underlying stylesheet.
func (v *SheetView) Sheet() *Stylesheet {
	return v.sheet
}

// ContentType returns the sheet's content type, always "text/css".
func (v *SheetView) ContentType() string {
	return v.contentType
}

// Href returns the stylesheet URL as a string, or "" for no URL.
func (v *SheetView) Href() string {
	if v.sheet == nil || v.sheet.URL() == nil {
		return ""
	}
	return v.sheet.URL().String()
}

// Title returns the view's advisory title.
func (v *SheetView) Title() string {
	return v.title
}

// SetTitle sets the view's advisory title.
func (v *SheetView) SetTitle(title string) {
	v.title = title
}

// Disabled reports whether the view has been disabled.
func (v *SheetView) Disabled() bool {
	return v.disabled
}

// SetDisabled enables or disables the view.
func (v *SheetView) SetDisabled(disabled bool) {
	v.disabled = disabled
}

// OriginClean reports whether the sheet's origin is clean, i.e. whether its
// contents may be inspected by same-origin script.
func (v *SheetView) OriginClean() bool {
	return v.originClean
}

// SetOriginClean marks the sheet's origin cleanliness. Propagated by the
// owner when the loader learns the final response origin.
func (v *SheetView) SetOriginClean(clean bool) {
	v.originClean = clean
}
