// Package updates provides a small net/http handler that pushes widget
// updates to a live session. Clients POST a JSON body naming the session,
// the target widget and any of label, choices and selected; omitted keys are
// left unchanged on the page.
//
// The handler resolves the session through a SessionResolver and serialises
// updates per session through a StateStore, so the tracked widget state used
// to validate selection-only updates stays consistent.
package updates
