// Package notify defines the toast notification contract the sync core emits
// into. The core fires and forgets; rendering is the embedding UI's problem.
package notify

import (
	"log"
	"sync"
)

// Severity classifies how prominently a notification should be surfaced.
type Severity string

const (
	// SeverityInfo marks routine change notices.
	SeverityInfo Severity = "info"
	// SeveritySuccess marks completed operations, such as a restored connection.
	SeveritySuccess Severity = "success"
	// SeverityWarning marks changes the user probably wants to look at.
	SeverityWarning Severity = "warning"
	// SeverityError marks changes that pulled state out from under the user.
	SeverityError Severity = "error"
)

// Notification is one toast message.
type Notification struct {
	Title       string
	Message     string
	Severity    Severity
	AutoCloseMs int
}

// Notifier surfaces human-readable toasts. Implementations must not block and
// must tolerate being called from the sync read loop.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the process log. It is the default sink
// for headless runs.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(n Notification) {
	if n.Title != "" {
		log.Printf("notify [%s] %s: %s", n.Severity, n.Title, n.Message)
		return
	}
	log.Printf("notify [%s] %s", n.Severity, n.Message)
}

// Buffer retains notifications in memory for consumers that render toasts
// asynchronously, and for tests.
type Buffer struct {
	mu            sync.Mutex
	notifications []Notification
}

// Notify implements Notifier.
func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = append(b.notifications, n)
}

// Notifications returns a copy of everything notified so far.
func (b *Buffer) Notifications() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notification, len(b.notifications))
	copy(out, b.notifications)
	return out
}

// Reset discards retained notifications.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = nil
}
