package dom

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/embedder"
)

// StylesheetOwner identifies the element a registered stylesheet belongs to,
// and whether its loads block the document.
type StylesheetOwner interface {
	OwnerElement() *Element
	Blocking() bool
}

// sheetEntry is one row of the document's active-stylesheet registry.
type sheetEntry struct {
	owner StylesheetOwner
	sheet *css.Stylesheet
}

// Document owns the base URL, the ordered active-stylesheet registry, the
// load-blocking accounting, and the task queue all element state runs on.
type Document struct {
	baseURL *url.URL
	tasks   *TaskQueue
	logger  *slog.Logger

	topLevel           bool
	hasBrowsingContext bool
	embedder           embedder.Channel

	// Registry and blocking state are only touched from tasks, except the
	// blocked channel which WaitQuiescent reads from other goroutines.
	sheets []sheetEntry

	pendingBlocking int
	blocked         chan struct{} // non-nil while pendingBlocking > 0
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithLogger sets the document's logger.
func WithLogger(logger *slog.Logger) DocumentOption {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithEmbedder sets the channel icon notices are sent on.
func WithEmbedder(ch embedder.Channel) DocumentOption {
	return func(d *Document) {
		d.embedder = ch
	}
}

// NotTopLevel marks the document as an embedded browsing context; icon
// notices are suppressed for those.
func NotTopLevel() DocumentOption {
	return func(d *Document) {
		d.topLevel = false
	}
}

// WithoutBrowsingContext marks the document as having no browsing context;
// such documents never load stylesheets.
func WithoutBrowsingContext() DocumentOption {
	return func(d *Document) {
		d.hasBrowsingContext = false
	}
}

// NewDocument creates a document with the given absolute base URL.
// By default the document is a top-level browsing context.
func NewDocument(baseURL string, opts ...DocumentOption) (*Document, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.New("E060").Wrap(err)
	}
	if !u.IsAbs() {
		return nil, errors.New("E060").
			WithSuggestion("pass an absolute URL, e.g. https://example.com/")
	}

	d := &Document{
		baseURL:            u,
		tasks:              NewTaskQueue(),
		logger:             slog.Default(),
		topLevel:           true,
		hasBrowsingContext: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// BaseURL returns the document's base URL.
func (d *Document) BaseURL() *url.URL {
	return d.baseURL
}

// ResolveURL resolves a reference against the document's base URL.
func (d *Document) ResolveURL(ref string) (*url.URL, error) {
	return d.baseURL.Parse(ref)
}

// TopLevel reports whether this document is the top-level browsing context.
func (d *Document) TopLevel() bool {
	return d.topLevel
}

// HasBrowsingContext reports whether this document has a browsing context.
func (d *Document) HasBrowsingContext() bool {
	return d.hasBrowsingContext
}

// Logger returns the document's logger.
func (d *Document) Logger() *slog.Logger {
	return d.logger
}

// Post schedules a task on the document's execution context.
func (d *Document) Post(task func()) {
	d.tasks.Post(task)
}

// Drain runs queued tasks until the queue is empty.
func (d *Document) Drain() int {
	return d.tasks.Drain()
}

// Run executes tasks until ctx is done.
func (d *Document) Run(ctx context.Context) error {
	return d.tasks.Run(ctx)
}

// Close shuts down the document's task queue.
func (d *Document) Close() {
	d.tasks.Close()
}

// AddStylesheet appends a stylesheet to the document's active list.
func (d *Document) AddStylesheet(owner StylesheetOwner, sheet *css.Stylesheet) {
	d.sheets = append(d.sheets, sheetEntry{owner: owner, sheet: sheet})
}

// RemoveStylesheet removes a stylesheet from the active list. Removing a
// stylesheet that is not registered is a no-op.
func (d *Document) RemoveStylesheet(owner StylesheetOwner, sheet *css.Stylesheet) {
	for i, entry := range d.sheets {
		if entry.owner == owner && entry.sheet == sheet {
			d.sheets = append(d.sheets[:i], d.sheets[i+1:]...)
			return
		}
	}
}

// Stylesheets returns the active stylesheets, in registration order.
func (d *Document) Stylesheets() []*css.Stylesheet {
	out := make([]*css.Stylesheet, len(d.sheets))
	for i, entry := range d.sheets {
		out[i] = entry.sheet
	}
	return out
}

// NotifyIcon forwards an icon notice to the embedder channel, if one is set.
// The caller is responsible for the top-level browsing context check.
func (d *Document) NotifyIcon(ic embedder.Icon) {
	if d.embedder == nil {
		return
	}
	d.embedder.NewIcon(ic)
}

// NoteBlockingLoadStarted records that a blocking owner has an outstanding
// load batch. Non-blocking owners are ignored.
func (d *Document) NoteBlockingLoadStarted(owner StylesheetOwner) {
	if !owner.Blocking() {
		return
	}
	d.pendingBlocking++
	if d.blocked == nil {
		d.blocked = make(chan struct{})
	}
}

// NoteStylesheetLoaded receives a batch's aggregate outcome from an owner.
// For blocking owners it decrements the pending-blocking count and releases
// WaitQuiescent when the count reaches zero.
func (d *Document) NoteStylesheetLoaded(owner StylesheetOwner, anyFailed bool) {
	d.logger.Debug("stylesheet batch finished",
		"element", owner.OwnerElement().Tag(),
		"failed", anyFailed,
		"blocking", owner.Blocking())

	if !owner.Blocking() {
		return
	}
	if d.pendingBlocking > 0 {
		d.pendingBlocking--
	}
	if d.pendingBlocking == 0 && d.blocked != nil {
		close(d.blocked)
		d.blocked = nil
	}
}

// PendingBlockingLoads returns the number of outstanding blocking batches.
func (d *Document) PendingBlockingLoads() int {
	return d.pendingBlocking
}

// WaitQuiescent blocks until no blocking load batches are outstanding, or
// until ctx is done. It must not be called from a document task.
func (d *Document) WaitQuiescent(ctx context.Context) error {
	for {
		ready := make(chan chan struct{}, 1)
		d.Post(func() {
			ready <- d.blocked
		})

		var blocked chan struct{}
		select {
		case blocked = <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}

		if blocked == nil {
			return nil
		}
		select {
		case <-blocked:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
