// Package link implements the load coordinator for link elements that
// reference external resources: stylesheets and site icons.
//
// A link Element watches its rel/href/sizes/media attributes and its
// attach/detach lifecycle, decides which protocol to run, and governs the
// asynchronous load traffic that follows:
//
//   - Each stylesheet-load initiation bumps a monotonic generation; a
//     completion tagged with a superseded generation can never install its
//     result.
//   - A single logical request may fan out into several sub-loads (nested
//     imports). Each generation's batch aggregates its own completions and
//     reports one boolean outcome to the document, exactly once, when the
//     last sub-load lands.
//   - Icon notifications are generation-agnostic and fire-and-forget.
//
// All coordinator state is mutated on the owning document's task queue.
// Loaders fetch on their own goroutines and post their notifications back
// with Owner.PostTask; there is no cancellation of in-flight fetches, only
// staleness filtering at install time.
package link
