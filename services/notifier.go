package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is one delivered reminder. Tag carries the appointment id so a
// notification center can collapse duplicates for the same record.
type Notification struct {
	Tag    uuid.UUID `json:"tag"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sentAt"`
}

// Notifier is a reminder delivery channel.
type Notifier interface {
	// Ready reports whether the channel is able to deliver right now. The
	// scheduler performs no work at all while no channel is ready.
	Ready() bool
	Notify(n Notification) error
}

// FeedNotifier keeps delivered notifications in memory for the app shell to
// poll; this is the local notification center. A notification with the same
// tag replaces the previous one.
type FeedNotifier struct {
	mu        sync.Mutex
	delivered []Notification
}

func NewFeedNotifier() *FeedNotifier {
	return &FeedNotifier{}
}

func (f *FeedNotifier) Ready() bool { return true }

func (f *FeedNotifier) Notify(n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.delivered {
		if existing.Tag == n.Tag {
			f.delivered[i] = n
			return nil
		}
	}
	f.delivered = append(f.delivered, n)
	return nil
}

// Delivered returns a snapshot of the feed, newest last.
func (f *FeedNotifier) Delivered() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.delivered))
	copy(out, f.delivered)
	return out
}

// Clear empties the feed (user dismissed everything).
func (f *FeedNotifier) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delivered = nil
}

// FanoutNotifier delivers through every ready channel. Delivery counts as
// successful when at least one channel accepted the notification.
type FanoutNotifier struct {
	targets []Notifier
}

func NewFanoutNotifier(targets ...Notifier) *FanoutNotifier {
	return &FanoutNotifier{targets: targets}
}

func (f *FanoutNotifier) Ready() bool {
	for _, t := range f.targets {
		if t.Ready() {
			return true
		}
	}
	return false
}

func (f *FanoutNotifier) Notify(n Notification) error {
	delivered := false
	var lastErr error
	for _, t := range f.targets {
		if !t.Ready() {
			continue
		}
		if err := t.Notify(n); err != nil {
			log.Printf("Notification delivery failed for %s: %v", n.Tag, err)
			lastErr = err
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return errors.New("no notification channel is ready")
}
