package board

import "time"

// Store owns the canonical in-memory grid being edited. Every local
// mutation refreshes the last-edit timestamp and marks the store dirty;
// adopting a remote grid clears the flag. The reconciliation engine reads
// both to decide whether a remote poll may overwrite local work.
type Store struct {
	grid     Grid
	lastEdit time.Time
	dirty    bool

	// now is replaceable for tests.
	now func() time.Time
}

// NewStore creates a store with a blank grid of the given size.
func NewStore(size Size) *Store {
	return &Store{
		grid: NewGrid(size),
		now:  time.Now,
	}
}

// SetClock replaces the store's time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Size returns the board dimensions.
func (s *Store) Size() Size {
	return s.grid.Size()
}

// Grid returns the live grid. Callers must treat it as read-only and go
// through the store's mutation API for writes.
func (s *Store) Grid() Grid {
	return s.grid
}

// Snapshot returns an independent copy of the live grid.
func (s *Store) Snapshot() Grid {
	return s.grid.Clone()
}

// At returns the cell at pos.
func (s *Store) At(pos Position) Cell {
	return s.grid.At(pos)
}

// SetChar writes a printable character into the cell at pos, clearing any
// color previously set there.
func (s *Store) SetChar(pos Position, ch string) {
	s.grid.Set(pos, Glyph(ch))
	s.touch()
}

// SetColor paints the cell at pos with the given color.
func (s *Store) SetColor(pos Position, color string) {
	s.grid.Set(pos, Colored(color))
	s.touch()
}

// ClearCell blanks the cell at pos, removing both character and color.
func (s *Store) ClearCell(pos Position) {
	s.grid.Set(pos, Blank())
	s.touch()
}

// ClearAll blanks the entire grid.
func (s *Store) ClearAll() {
	s.grid.Fill(Blank())
	s.touch()
}

// Adopt replaces the live grid with a remote one and clears the dirty
// flag. The incoming grid is cloned so later remote mutations cannot
// alias the live buffer.
func (s *Store) Adopt(g Grid) {
	s.grid = g.Clone()
	s.dirty = false
}

// Dirty reports whether there are local edits not yet known to match the
// physical board.
func (s *Store) Dirty() bool {
	return s.dirty
}

// LastEdit returns the time of the most recent local mutation, or the
// zero time if the board was never edited.
func (s *Store) LastEdit() time.Time {
	return s.lastEdit
}

func (s *Store) touch() {
	s.lastEdit = s.now()
	s.dirty = true
}
