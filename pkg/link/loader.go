package link

import (
	"net/url"

	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/dom"
)

// ReferrerPolicy is the referrer handling derived from the link element.
type ReferrerPolicy int

const (
	// ReferrerDefault defers to the loader's default policy.
	ReferrerDefault ReferrerPolicy = iota
	// ReferrerNone suppresses the referrer entirely (rel contains noreferrer).
	ReferrerNone
)

// String returns the policy keyword.
func (p ReferrerPolicy) String() string {
	if p == ReferrerNone {
		return "no-referrer"
	}
	return "default"
}

// Request carries everything a loader needs to obtain a stylesheet.
type Request struct {
	// URL is the href resolved against the document base URL.
	URL *url.URL
	// Media is the opaque media descriptor from the media attribute.
	Media *css.MediaList
	// CORS is the mode extracted from the crossorigin attribute.
	CORS dom.CORSMode
	// Integrity is the integrity attribute value, verbatim; empty means no
	// integrity checking.
	Integrity string
	// Referrer is the derived referrer policy.
	Referrer ReferrerPolicy
	// Generation tags the request; loaders must echo it on every
	// notification they deliver for this request.
	Generation GenerationID
}

// Owner is the loader's view of the element that issued a request.
//
// Loaders run fetches on their own goroutines but must deliver every
// notification on the element's execution context via PostTask. Every Load
// call must produce at least one NoteLoadStarted/NoteLoadFinished pair, and
// a started sub-load must be noted before the completion that discovered it
// is noted as finished.
type Owner interface {
	// PostTask schedules fn on the element's execution context.
	PostTask(fn func())

	// NoteLoadStarted records one sub-load of the given generation entering
	// flight.
	NoteLoadStarted(gen GenerationID)

	// NoteLoadFinished records one sub-load completion for the given
	// generation.
	NoteLoadFinished(gen GenerationID, succeeded bool)

	// InstallStylesheet offers the fetched root stylesheet for installation.
	// Superseded generations are silently discarded.
	InstallStylesheet(gen GenerationID, sheet *css.Stylesheet)

	// Blocking reports whether this owner's loads block the document.
	Blocking() bool
}

// Loader obtains stylesheets. Implementations live in pkg/loader; tests use
// in-memory fakes.
type Loader interface {
	Load(req Request, owner Owner)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(req Request, owner Owner)

// Load implements Loader.
func (f LoaderFunc) Load(req Request, owner Owner) {
	f(req, owner)
}
