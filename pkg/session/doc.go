// Package session provides the server to client channel update messages
// travel on. A Session is one connected browser; the Hub implementation keeps
// sessions in memory and streams their messages as server-sent events.
//
// Sends are fire-and-forget: a successful call only means the message was
// queued locally. There is no acknowledgement and no retry.
package session
