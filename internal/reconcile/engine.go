package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/event"
)

// Default tuning values. Both are product knobs, not protocol
// requirements, and can be overridden through Options and live config.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultStaleness    = 30 * time.Second
)

// Fetcher retrieves the current physical board state.
type Fetcher interface {
	Fetch(ctx context.Context) (board.Grid, error)
}

// Notice is a non-blocking message surfaced to the user, typically that
// an external change hit the board mid-edit.
type Notice struct {
	ID      string
	Message string
	Time    time.Time
}

// StatusChange is published on the status topic when the connection
// state flips.
type StatusChange struct {
	Offline bool
}

// Adopted is published when the live grid is replaced by the remote
// board.
type Adopted struct {
	Manual bool
}

// Options configures an Engine.
type Options struct {
	// Staleness is the window after the last local edit during which a
	// poll may not overwrite the live grid. Zero keeps the default.
	Staleness time.Duration

	// Logger receives tick-level diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Engine owns the reconciliation state machine. It is driven from the
// application event loop: Tick on the poll cadence, SyncNow on user
// request. Engine is not safe for concurrent use.
type Engine struct {
	store   *board.Store
	fetcher Fetcher
	bus     *event.Bus
	logger  *slog.Logger

	staleness time.Duration

	// lastSynced tracks the physical device state as of the most recent
	// successful fetch, independent of local edit status.
	lastSynced board.Grid

	notice  *Notice
	offline bool

	// now is replaceable for tests.
	now func() time.Time
}

// NewEngine creates a reconciliation engine.
func NewEngine(store *board.Store, fetcher Fetcher, bus *event.Bus, opts Options) *Engine {
	staleness := opts.Staleness
	if staleness == 0 {
		staleness = DefaultStaleness
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:     store,
		fetcher:   fetcher,
		bus:       bus,
		logger:    logger.With("component", "reconcile"),
		staleness: staleness,
		now:       time.Now,
	}
}

// SetClock replaces the engine's time source. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetStaleness updates the staleness window, typically from a live
// config reload.
func (e *Engine) SetStaleness(d time.Duration) {
	if d > 0 {
		e.staleness = d
	}
}

// Offline reports whether the last fetch failed.
func (e *Engine) Offline() bool {
	return e.offline
}

// Notice returns the outstanding notice, or nil.
func (e *Engine) Notice() *Notice {
	return e.notice
}

// ClearNotice dismisses the outstanding notice.
func (e *Engine) ClearNotice() {
	e.notice = nil
}

// LastSynced returns the last fetched physical board state. The zero
// grid means no fetch has succeeded yet.
func (e *Engine) LastSynced() board.Grid {
	return e.lastSynced
}

// Tick runs one reconciliation pass. Fetch failures flip the offline
// indicator and return nil; the next scheduled tick retries.
func (e *Engine) Tick(ctx context.Context) error {
	remote, err := e.fetcher.Fetch(ctx)
	if err != nil {
		e.logger.Warn("poll failed", "error", err)
		e.setOffline(true)
		return nil
	}
	e.setOffline(false)

	live := e.store.Grid()
	if e.store.Dirty() && !remote.Equal(live) && !e.sameAsLastSynced(remote) {
		e.raiseNotice()
	}

	if e.stale() {
		e.adopt(remote, false)
	}

	e.lastSynced = remote.Clone()
	return nil
}

// SyncNow force-overwrites the live grid with a fresh fetch, bypassing
// the staleness policy, and clears both the pending-edit flag and any
// outstanding notice.
func (e *Engine) SyncNow(ctx context.Context) error {
	remote, err := e.fetcher.Fetch(ctx)
	if err != nil {
		e.setOffline(true)
		return fmt.Errorf("manual sync: %w", err)
	}
	e.setOffline(false)

	e.adopt(remote, true)
	e.lastSynced = remote.Clone()
	return nil
}

// stale reports whether the last local edit is old enough for a poll to
// overwrite the live grid. A board that was never edited is infinitely
// stale.
func (e *Engine) stale() bool {
	last := e.store.LastEdit()
	if last.IsZero() {
		return true
	}
	return e.now().Sub(last) > e.staleness
}

// sameAsLastSynced compares against the snapshot, treating the
// never-fetched zero grid as matching nothing.
func (e *Engine) sameAsLastSynced(g board.Grid) bool {
	if e.lastSynced.IsZero() {
		return false
	}
	return g.Equal(e.lastSynced)
}

func (e *Engine) adopt(remote board.Grid, manual bool) {
	e.store.Adopt(remote)
	e.notice = nil
	e.bus.Publish(event.TopicAdopted, Adopted{Manual: manual})
	e.logger.Debug("adopted remote board", "manual", manual)
}

// raiseNotice surfaces the external-change notice. An already
// outstanding notice is kept rather than replaced so the user sees one
// stable message per divergence.
func (e *Engine) raiseNotice() {
	if e.notice != nil {
		return
	}
	e.notice = &Notice{
		ID:      uuid.NewString(),
		Message: "the board changed outside this editor",
		Time:    e.now(),
	}
	e.bus.Publish(event.TopicNotice, *e.notice)
	e.logger.Info("external board change detected")
}

func (e *Engine) setOffline(offline bool) {
	if e.offline == offline {
		return
	}
	e.offline = offline
	e.bus.Publish(event.TopicStatus, StatusChange{Offline: offline})
	if offline {
		e.logger.Warn("remote board offline")
	} else {
		e.logger.Info("remote board reachable")
	}
}
