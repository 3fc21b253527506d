package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal owns the real tcell screen. Everything else in the package
// works against the Surface interface and never touches a tty.
type Terminal struct {
	screen tcell.Screen
	quit   chan struct{}
}

// NewTerminal allocates a terminal screen without initializing it.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, quit: make(chan struct{})}, nil
}

// Init takes over the terminal and enables mouse reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	close(t.quit)
	t.screen.Fini()
}

// Events starts the event pump and returns its channel. The channel
// closes when Fini is called.
func (t *Terminal) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 16)
	go t.screen.ChannelEvents(ch, t.quit)
	return ch
}

// Render draws a full frame.
func (t *Terminal) Render(st State) {
	t.screen.Clear()
	Render(t.screen, st)
	t.screen.Show()
}
