package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TypeDatabaseUpdate is the event type emitted for every store mutation.
const TypeDatabaseUpdate = "database_update"

type Entity string

const (
	EntityGuide    Entity = "guide"
	EntityReview   Entity = "review"
	EntityBooking  Entity = "booking"
	EntityDatabase Entity = "database"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
	OpImport Op = "import"
)

// ChangeEvent tells listeners that stored data changed and should be re-read.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Entity    Entity    `json:"entity"`
	Op        Op        `json:"op"`
	ID        string    `json:"id,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChange(entity Entity, op Op, id string, now time.Time) ChangeEvent {
	return ChangeEvent{Type: TypeDatabaseUpdate, Entity: entity, Op: op, ID: id, Timestamp: now}
}

type Listener func(ChangeEvent)

// Notifier fans change events out to registered listeners. Listeners are
// called synchronously on the publishing goroutine, in no particular order,
// and must not block.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	log       zerolog.Logger
}

func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{listeners: make(map[int]Listener), log: log}
}

// Subscribe registers fn and returns a func that removes it. The returned
// func is safe to call more than once.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) Publish(ev ChangeEvent) {
	n.mu.RLock()
	snapshot := make([]Listener, 0, len(n.listeners))
	for _, fn := range n.listeners {
		snapshot = append(snapshot, fn)
	}
	n.mu.RUnlock()

	for _, fn := range snapshot {
		n.deliver(fn, ev)
	}
}

func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

func (n *Notifier) deliver(fn Listener, ev ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Str("entity", string(ev.Entity)).Msg("change listener panicked")
		}
	}()
	fn(ev)
}
