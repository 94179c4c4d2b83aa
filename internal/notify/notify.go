// Package notify carries user-visible notifications from the panel
// coordinators to whatever front end is attached (TUI footer, one-shot CLI
// output, test recorder). Log-only diagnostics do not pass through here.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level int

const (
	Info Level = iota
	Success
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notification is one dismissible user-facing message.
type Notification struct {
	Level   Level
	Message string
	Time    time.Time
}

// Notifier receives notifications emitted by the panel.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(n Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops all notifications.
var Discard Notifier = Func(func(Notification) {})

// New builds a notification stamped with the current time.
func New(level Level, message string) Notification {
	return Notification{Level: level, Message: message, Time: time.Now()}
}

// Recorder collects notifications for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

// All returns a copy of every recorded notification.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}

// Errors returns only the error-level notifications.
func (r *Recorder) Errors() []Notification {
	var out []Notification
	for _, n := range r.All() {
		if n.Level == Error {
			out = append(out, n)
		}
	}
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
