package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen serializes access to a tcell screen.
type Screen struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewScreen opens the terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: s}, nil
}

// WrapScreen uses an existing tcell screen, such as a simulation screen.
func WrapScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Init initializes the terminal with mouse reporting enabled.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

// Size returns the screen size in cells.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// SetCell sets one cell.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes str from (x, y) and returns the column after it. Text is
// cut at the right edge.
func (s *Screen) DrawText(x, y int, str string, style tcell.Style) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, _ := s.screen.Size()
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// Fill paints a row range with r.
func (s *Screen) Fill(x, y, w int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < w; i++ {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Clear clears the back buffer.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
}

// Show flushes the back buffer.
func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Show()
}

// Sync redraws the whole terminal, used after a resize.
func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
}

// PollEvent blocks for the next event. It returns nil after Fini.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Interrupt wakes PollEvent with an interrupt event.
func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; the queue may be full
}
