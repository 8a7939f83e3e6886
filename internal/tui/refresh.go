package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Refresher carries redraw requests from notification timers into the UI
// loop. Notify never blocks, so it is safe to call from inside Update.
type Refresher struct {
	ch chan struct{}
}

func NewRefresher() *Refresher {
	return &Refresher{ch: make(chan struct{}, 1)}
}

// Notify requests a redraw. Requests made while one is pending are merged.
func (r *Refresher) Notify() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

// waitForRefresh blocks until the next redraw request. The App re-arms it
// after every RefreshMsg.
func waitForRefresh(ctx context.Context, r *Refresher) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-r.ch:
			return RefreshMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
