// Package embedder carries one-way notifications from the document engine to
// its embedder, such as discovered site icons. An in-process Channel is the
// consumption point; a websocket bridge is provided for out-of-process
// embedders.
package embedder

import (
	"log/slog"
	"net/url"
	"sync"
)

// Icon is a site-icon discovery notice.
//
// Sizes is the raw sizes attribute value at notification time. It is carried
// through for the embedder's benefit but the engine performs no size-based
// selection among icon candidates.
type Icon struct {
	URL   *url.URL
	Sizes string
}

// Channel receives notices from the engine. Implementations must not block;
// delivery is fire-and-forget.
type Channel interface {
	NewIcon(Icon)
}

// Func adapts a function to a Channel.
type Func func(Icon)

// NewIcon implements Channel.
func (f Func) NewIcon(ic Icon) {
	f(ic)
}

// Fanout duplicates every notice to each of the given channels, in order.
func Fanout(channels ...Channel) Channel {
	return Func(func(ic Icon) {
		for _, ch := range channels {
			ch.NewIcon(ic)
		}
	})
}

// Log returns a Channel that records notices to a slog logger at debug level.
func Log(logger *slog.Logger) Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return Func(func(ic Icon) {
		logger.Debug("icon discovered", "url", ic.URL.String(), "sizes", ic.Sizes)
	})
}

// Collector is a Channel that retains every notice it receives.
// Intended for tests and for the CLI's end-of-run report.
type Collector struct {
	mu      sync.Mutex
	notices []Icon
}

// NewIcon implements Channel.
func (c *Collector) NewIcon(ic Icon) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, ic)
}

// Notices returns a copy of the notices received so far.
func (c *Collector) Notices() []Icon {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Icon, len(c.notices))
	copy(out, c.notices)
	return out
}

// Len returns the number of notices received so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notices)
}
