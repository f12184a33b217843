// Package dom provides the minimal document model the link load coordinator
// hangs off: a Document with a base URL, an ordered active-stylesheet
// registry, load-blocking accounting, and a single-writer task queue; and an
// Element with attribute storage, ordered mutation-observer dispatch, and
// explicit attach/detach lifecycle callbacks.
//
// # Execution model
//
// All element and coordinator state is mutated on the document's task queue,
// a single logical execution context. Collaborators running on other
// goroutines (loaders, embedder bridges) deliver their notifications with
// Document.Post. Within a task no locking is needed; the queue serializes
// everything.
package dom
