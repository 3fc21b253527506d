// Package reconcile keeps the local edit buffer coherent with the
// physical board, which can change on its own while the user edits.
//
// Each poll tick fetches the remote board and decides between three
// outcomes:
//
//   - Adopt silently: no fresh local edits exist (the last edit is older
//     than the staleness window), so the remote board simply replaces
//     the live grid.
//   - Ignore silently: the user edited recently; the live grid is left
//     alone even when it differs from the remote board.
//   - Notice: local edits are pending and the remote board differs from
//     both the live grid and the last-synced snapshot. Something other
//     than this editor changed the board, so a non-destructive notice is
//     raised instead of clobbering unsaved work.
//
// The last-synced snapshot always tracks the most recent successful
// fetch regardless of adoption. That is what distinguishes "the device
// caught up with what I sent" from "an installable rewrote the board
// behind my back".
//
// Fetch failures mark the connection offline and are never propagated as
// tick errors; a failed tick is skipped and the next scheduled tick
// retries. A manual sync bypasses the staleness policy entirely.
package reconcile
