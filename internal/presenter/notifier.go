package presenter

import (
	"slices"
	"sync"
	"time"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is a transient message shown to the user.
type Notification struct {
	ID      uint64
	Kind    Kind
	Message string
}

// Notifier holds live notifications and removes each one after its lifetime.
// Removal runs on a timer goroutine, so the notifier is safe for concurrent
// use; onChange is called after every post and removal, outside the lock.
type Notifier struct {
	mu       sync.Mutex
	nextID   uint64
	active   map[uint64]liveNotification
	onChange func()
	closed   bool
}

type liveNotification struct {
	Notification
	timer *time.Timer
}

func NewNotifier() *Notifier {
	return &Notifier{active: make(map[uint64]liveNotification)}
}

// SetOnChange installs the callback used to signal a redraw.
func (n *Notifier) SetOnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Post shows a notification for ttl. It never blocks on the expiry.
func (n *Notifier) Post(kind Kind, msg string, ttl time.Duration) Notification {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return Notification{}
	}
	n.nextID++
	note := Notification{ID: n.nextID, Kind: kind, Message: msg}
	id := note.ID
	n.active[id] = liveNotification{
		Notification: note,
		timer:        time.AfterFunc(ttl, func() { n.Dismiss(id) }),
	}
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
	return note
}

// Dismiss removes a notification before its timer fires. It reports whether
// the notification was still live.
func (n *Notifier) Dismiss(id uint64) bool {
	n.mu.Lock()
	live, ok := n.active[id]
	if ok {
		live.timer.Stop()
		delete(n.active, id)
	}
	fn := n.onChange
	n.mu.Unlock()

	if ok && fn != nil {
		fn()
	}
	return ok
}

// Active returns live notifications, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, 0, len(n.active))
	for _, live := range n.active {
		out = append(out, live.Notification)
	}
	slices.SortFunc(out, func(a, b Notification) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Close cancels all pending timers and drops every notification.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, live := range n.active {
		live.timer.Stop()
		delete(n.active, id)
	}
	n.closed = true
}
