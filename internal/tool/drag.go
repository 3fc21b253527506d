package tool

import "github.com/dshills/splitflap/internal/board"

// dragSession tracks one continuous paint gesture. It lives from
// pointer-down to pointer-up (or the pointer leaving the board) and
// remembers every cell already painted so re-traversal within the same
// gesture stays idempotent.
type dragSession struct {
	// active indicates a gesture is in progress.
	active bool

	// visited holds the cells painted during this gesture.
	visited map[board.Position]struct{}
}

// start begins a new gesture.
func (s *dragSession) start() {
	s.active = true
	s.visited = make(map[board.Position]struct{})
}

// end closes the gesture and drops the visited set.
func (s *dragSession) end() {
	s.active = false
	s.visited = nil
}

// isActive returns true while a gesture is in progress.
func (s *dragSession) isActive() bool {
	return s.active
}

// mark records pos as painted. It returns false if the cell was already
// visited during this gesture.
func (s *dragSession) mark(pos board.Position) bool {
	if !s.active {
		return false
	}
	if _, seen := s.visited[pos]; seen {
		return false
	}
	s.visited[pos] = struct{}{}
	return true
}
