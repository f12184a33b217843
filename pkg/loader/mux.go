package loader

import (
	"log/slog"

	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/link"
)

// Mux dispatches loads by URL scheme. A scheme with no registered
// loader still produces a failed load, so the owner's batch accounting
// stays balanced.
type Mux struct {
	loaders map[string]link.Loader
	logger  *slog.Logger
}

// NewMux creates an empty scheme mux.
func NewMux(logger *slog.Logger) *Mux {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mux{
		loaders: make(map[string]link.Loader),
		logger:  logger,
	}
}

// Handle registers a loader for a URL scheme.
func (m *Mux) Handle(scheme string, loader link.Loader) *Mux {
	m.loaders[scheme] = loader
	return m
}

// Load implements link.Loader.
func (m *Mux) Load(req link.Request, owner link.Owner) {
	if l, ok := m.loaders[req.URL.Scheme]; ok {
		l.Load(req, owner)
		return
	}
	serr := errors.New("E023").WithDetail(req.URL.Scheme)
	m.logger.Warn("no loader for scheme",
		"url", req.URL.String(),
		"error", serr.FormatCompact())
	owner.NoteLoadStarted(req.Generation)
	owner.PostTask(func() {
		owner.NoteLoadFinished(req.Generation, false)
	})
}
