// Package ui provides terminal rendering using tcell.
package ui

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gdamore/tcell/v2"
)

// defaultPostTimeout bounds how long Post waits for room in the event queue.
const defaultPostTimeout = 2 * time.Second

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen      tcell.Screen
	postTimeout time.Duration
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return WrapScreen(s)
}

// WrapScreen initializes an existing tcell screen, such as a simulation
// screen in tests.
func WrapScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s, postTimeout: defaultPostTimeout}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Post queues fn to run on the goroutine that polls events. While the event
// queue is full it retries with exponential backoff and returns the last
// error once the post timeout has passed. Safe to call from any goroutine.
func (s *Screen) Post(fn func()) error {
	ev := tcell.NewEventInterrupt(fn)
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	_, err := backoff.Retry(context.Background(), func() (struct{}, error) {
		return struct{}{}, s.screen.PostEvent(ev)
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(s.postTimeout))
	return err
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
