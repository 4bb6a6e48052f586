package query

import (
	"sync"
	"time"
)

// Level classifies a queued notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is one queued, non-blocking notification. The view drains the
// queue on its own schedule instead of being interrupted by a modal dialog.
type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifications is a thread-safe FIFO of pending notices.
type Notifications struct {
	mu    sync.Mutex
	queue []Notice
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Push(level Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, Notice{Level: level, Message: msg, At: time.Now()})
}

// Drain returns and clears all pending notices.
func (n *Notifications) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	return out
}

func (n *Notifications) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queue)
}
