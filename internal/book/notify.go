package book

import (
	"fmt"
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Status classifies a [Notification].
type Status int

const (
	StatusInfo Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInfo:
		return "info"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Notification is a transient message for the user.
type Notification struct {
	Status      Status
	Title       string
	Description string
	Duration    time.Duration
}

func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Description)
}

// Notifier receives notifications produced by the [Controller].
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Queue is a [Notifier] that buffers notifications until drained.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns every buffered notification in arrival order and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func discardNotifier() Notifier {
	return NotifierFunc(func(Notification) {})
}

func addedNotification(displayName string) Notification {
	desc := "Address added"
	if displayName != "" {
		desc = fmt.Sprintf("Address %q added", displayName)
	}
	return Notification{Status: StatusSuccess, Title: "Success", Description: desc, Duration: DefaultDuration}
}

func notFoundNotification(cep string) Notification {
	return Notification{Status: StatusError, Title: "Error", Description: fmt.Sprintf("CEP %s not found", cep), Duration: DefaultDuration}
}

func lookupFailedNotification() Notification {
	return Notification{Status: StatusError, Title: "Error", Description: "Failed to look up CEP", Duration: DefaultDuration}
}

func storageFailedNotification() Notification {
	return Notification{Status: StatusError, Title: "Error", Description: "Failed to save the address book", Duration: DefaultDuration}
}

func deletedNotification() Notification {
	return Notification{Status: StatusInfo, Title: "Removed", Description: "Address deleted", Duration: DefaultDuration}
}

func renamedNotification(displayName string) Notification {
	return Notification{Status: StatusSuccess, Title: "Success", Description: fmt.Sprintf("Display name set to %q", displayName), Duration: DefaultDuration}
}
