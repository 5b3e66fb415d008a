// Package ui provides the terminal page for quotedrop.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model composes three pieces that
// never share state directly:
//
//   - dropzone.Model: the file selection widget and its own state machine
//   - state.Page: connectivity, selected file, upload lifecycle and result
//   - keybus.Bus: the page's key subscriptions
//
// The drop zone reports the current file (or none) through its OnSelect
// observer, which New wires to Page.SelectFile. The page never looks at the
// drop zone's state and the drop zone never sees upload progress.
//
// # Package Structure
//
//   - app.go: Model, New/Close, Update routing, commands and Run
//   - view.go: header, submit control, status line and footer
//   - result.go: quote table formatting
//   - help.go: help overlay
//   - keys.go: page key bindings
//   - theme.go: Lipgloss themes
//
// # Event Flow
//
//  1. Init issues the connectivity probe (GET /) once
//  2. Keys go to the drop zone first (picker, paste, its own keys), then to
//     the key bus (Enter submits, Escape clears), then to page keys
//  3. A submit that the page accepts starts an upload command; its result
//     returns as a message carrying the upload's ticket
//  4. The page applies the result only if that ticket is still active
//
// # Key Subscriptions
//
// Enter and Escape are subscribed on a key bus owned by the Model rather
// than handled by a free-standing listener. New takes the subscriptions and
// Close releases them; Run defers Close so nothing outlives the program.
//
// # Mouse
//
// The program runs with cell motion mouse reporting. A left drag over the
// zone shows the dragging state; clicking the zone opens the picker;
// clicking the button row presses the submit control. Terminals deliver a
// dropped file as a bracketed paste of its path, which the drop zone treats
// as the drop itself.
package ui
