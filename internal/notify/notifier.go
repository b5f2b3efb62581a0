package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long non-error messages stay visible before
// clearing themselves.
const DefaultTTL = 3500 * time.Millisecond

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Message is a single user-visible status line.
type Message struct {
	Text     string
	Severity Severity
	ShownAt  time.Time
}

// Notifier holds at most one visible message. Showing a new message
// replaces the current one immediately; there is no queue. Success and
// info messages clear themselves after the TTL, error messages persist
// until dismissed or replaced.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *Message
	timer   *time.Timer
}

func New() *Notifier {
	return &Notifier{ttl: DefaultTTL}
}

// NewWithTTL creates a notifier with a custom auto-clear delay.
func NewWithTTL(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// Show replaces the current message. Any pending auto-clear for the
// previous message is cancelled so a stale timer can never clear a
// newer message.
func (n *Notifier) Show(text string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}

	n.seq++
	seq := n.seq
	n.current = &Message{Text: text, Severity: severity, ShownAt: time.Now()}

	if severity != SeverityError {
		n.timer = time.AfterFunc(n.ttl, func() {
			n.clearIf(seq)
		})
	}
}

// Success, Error and Info are shorthands for Show.
func (n *Notifier) Success(text string) { n.Show(text, SeveritySuccess) }
func (n *Notifier) Error(text string)   { n.Show(text, SeverityError) }
func (n *Notifier) Info(text string)    { n.Show(text, SeverityInfo) }

// Dismiss clears the current message immediately regardless of
// severity and cancels any pending auto-clear.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// clearIf clears the message only if it is still the one the expired
// timer was armed for.
func (n *Notifier) clearIf(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.seq != seq {
		return
	}
	n.current = nil
	n.timer = nil
}
