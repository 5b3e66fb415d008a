// Package state holds the page state machine for quotedrop.
//
// # Overview
//
// The page tracks four things: whether the backend answered the startup
// probe, which file is selected, where the upload of that file stands, and
// the quote the last upload returned. Page owns all of it and exposes only
// transitions, so nothing else can put the page into an inconsistent state.
//
// # Upload Lifecycle
//
//	disabled ──file──> ready ──submit──> uploading ──ok──────> success
//	ready    ──nil───> disabled          uploading ──failure─> error
//	error    ──submit──> uploading       success   ──click───> uploading
//
// SelectFile moves to ready (file) or disabled (nil) from any state and
// clears the error and the result. Submit moves to uploading: Enter is
// accepted in ready and error, a click also in success (re-upload), and both
// need a file. A second trigger while uploading is refused, so at most one
// upload is in flight. FinishUpload moves to success or error.
//
// # Late Results
//
// An upload cannot be cancelled. Each Submit hands out a Ticket and
// FinishUpload ignores any ticket that is no longer active. Selecting another
// file while an upload runs clears the active ticket, so the late answer for
// the old file is dropped instead of overwriting the new selection.
//
// # Connectivity
//
// BeginProbe returns true exactly once; the probe is never repeated.
// FinishProbe records connected or error.
//
// # Concurrency Model
//
// Page is not safe for concurrent use. The Bubble Tea loop owns it: uploads
// and probes run in commands and come back as messages, which the loop
// applies in order. No locks are needed because no two goroutines touch the
// page.
//
// # Snapshots
//
// Snapshot returns copies of the file and the quote, so a renderer cannot
// mutate the page through them.
package state
