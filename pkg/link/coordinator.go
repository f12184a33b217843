package link

import (
	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/css"
)

// NoteLoadStarted records a sub-load entering flight for a generation. The
// first start of a generation creates its batch; stragglers of superseded
// generations keep accounting into the batch they belong to.
func (e *Element) NoteLoadStarted(gen GenerationID) {
	b := e.batches[gen]
	if b == nil {
		b = &batch{}
		e.batches[gen] = b
	}
	b.loadStarted()
	e.monitor.LoadStarted(gen)
}

// NoteLoadFinished records a sub-load completion for a generation. When the
// generation's batch drains, its aggregate outcome is reported to the
// document's load-blocking accounting, exactly once, and the batch is
// retired.
func (e *Element) NoteLoadFinished(gen GenerationID, succeeded bool) {
	b := e.batches[gen]
	if b == nil {
		// Finished with no matching started: loader integration bug.
		panic(errors.New("E041"))
	}

	anyFailed, done := b.loadFinished(succeeded)
	e.monitor.LoadFinished(gen, succeeded)
	if !done {
		return
	}

	delete(e.batches, gen)
	e.monitor.BatchCompleted(gen, anyFailed)
	e.logger.Debug("stylesheet batch completed",
		"generation", uint32(gen),
		"failed", anyFailed)

	e.doc.NoteStylesheetLoaded(e, anyFailed)
}

// InstallStylesheet offers a fetched stylesheet for installation. The offer
// is honored only if the generation is still current and the element is
// still in the tree; anything else is a stale result and is silently
// discarded without touching the slot.
func (e *Element) InstallStylesheet(gen GenerationID, sheet *css.Stylesheet) {
	if gen != e.generation || !e.node.InDocument() {
		e.monitor.StaleDiscard(gen)
		e.logger.Debug("stale stylesheet discarded",
			"generation", uint32(gen),
			"current", uint32(e.generation),
			"attached", e.node.InDocument())
		return
	}
	e.setStylesheet(sheet)
}

// PendingLoads returns the number of in-flight sub-loads for the current
// generation. Superseded batches are not counted.
func (e *Element) PendingLoads() int {
	if b := e.batches[e.generation]; b != nil {
		return int(b.pending)
	}
	return 0
}
