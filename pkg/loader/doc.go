// Package loader provides link.Loader implementations: an HTTP(S) fetcher,
// an S3 fetcher, and a scheme-dispatching multiplexer.
//
// All implementations share one batch engine that honors the owner
// protocol: at least one started/finished pair per Load call, nested
// @import references fanned out as further sub-loads of the same
// generation, every notification delivered on the element's execution
// context, and the root stylesheet offered for installation before its
// completion is reported.
//
// Loads are fire-and-forget: a superseded generation's fetches run to
// completion and simply have their results discarded at install time.
// Timeout policy belongs here, not to the coordinator.
package loader
