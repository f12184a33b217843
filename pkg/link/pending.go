package link

import "github.com/dwijnand/servo/internal/errors"

// batch tracks the in-flight sub-loads of a single load request generation.
//
// The batch itself is generation-oblivious; the coordinator routes each
// completion to the batch of the generation it was tagged with, so a
// superseded generation still accounts its own stragglers.
type batch struct {
	pending   uint32
	anyFailed bool
}

// loadStarted records one sub-load entering flight.
func (b *batch) loadStarted() {
	b.pending++
}

// loadFinished records one sub-load completion. When the last outstanding
// sub-load lands, done is true and anyFailed carries the batch's aggregate
// outcome; the failure flag is reset so the outcome is reported exactly once.
//
// A completion with no outstanding start is a loader bug, not a recoverable
// runtime condition.
func (b *batch) loadFinished(succeeded bool) (anyFailed, done bool) {
	if b.pending == 0 {
		panic(errors.New("E040"))
	}
	if !succeeded {
		b.anyFailed = true
	}

	b.pending--
	if b.pending != 0 {
		return false, false
	}

	anyFailed = b.anyFailed
	b.anyFailed = false
	return anyFailed, true
}
