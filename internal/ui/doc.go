// Package ui renders the board editor in a terminal via tcell and
// translates terminal events into editor commands. Translation and
// rendering are pure so they can be tested against a simulation screen;
// only Terminal touches a real tty.
package ui
