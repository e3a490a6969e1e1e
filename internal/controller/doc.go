// Package controller holds the RecipeMama session state and the operations
// that change it.
//
// # Overview
//
// A Controller owns four things for the lifetime of a session: the recipe
// summaries returned by the list endpoint, the recipe currently open in
// detail form, the search/category filter, and the comment sequence. The
// render layer never mutates them directly. It calls the Controller's
// operations and reads Snapshot copies when notified through Subscribe.
//
// # View State
//
// There are two views:
//
//	Listing ──SelectRecipe(id), fetch ok──> Detail(id)
//	Detail(id) ──SelectRecipe(id'), fetch ok──> Detail(id')
//	Detail(id) ──GoBack()──> Listing
//
// A failed detail fetch leaves the view where it was.
//
// # Fetching
//
// LoadSummaries and SelectRecipe return immediately. Each fetch runs on its
// own goroutine and applies its result under the controller lock. Loading is
// true while any fetch is in flight. Overlapping fetches are not cancelled or
// de-duplicated; by default the response that resolves last wins, even when
// it was requested first. Options.DiscardStale switches to per-slot sequence
// numbers (list and detail are separate slots) so only the latest request of
// each slot can land.
//
// # Failures
//
// Every failure on either endpoint becomes a *FetchError matching
// ErrFetchFailed. It is logged, kept in Snapshot.LastError for diagnostics,
// and otherwise ignored: loading clears and the previous state stays.
//
// # Derived Views
//
// The summary collection is the single source of truth. FilteredView,
// RelatedRecipes and Categories are pure functions over it, recomputed on
// every read and never stored. FilteredView returns an iter.Seq so a caller
// can range over it, stop early, or range again.
//
// # Comments
//
// Comments live only in memory. PostComment trims its input, rejects blank
// text or a blank author, and appends with the label "Just now".
package controller
