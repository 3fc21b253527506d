// Package gateway implements the REST client for the remote board
// service: fetching the current board, pushing a user-authored grid, and
// toggling installables around a send so scheduled content does not
// immediately overwrite the user's message.
//
// Fetch prefers the code-encoded board representation, which preserves
// colors, and falls back to the legacy plain-character payload when codes
// are absent. Transport failures are classified as ErrOffline so callers
// can flip a connection indicator instead of surfacing raw errors.
package gateway
