// Package update pushes new state to widgets that are already rendered in a
// client session.
//
// Every message is self-contained and partial: fields the caller leaves
// unset are omitted from the wire entirely and the client keeps its current
// state for them. The server keeps no client DOM; the last state it sent for
// each widget lives in an explicit, session-scoped State that the session
// handler owns and passes to Send.
//
// Field semantics:
//
//   - label: omitted when unset; an empty string clears the label.
//   - options: omitted when unset; an empty choice set clears the list.
//     When choices change without a new selection, the previous selection is
//     kept for the values that still exist.
//   - value: omitted when unset; an empty selection is sent as [] and clears
//     the selection. It is never sent as null.
package update
