package events

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_FansOutToEveryListener(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var mu sync.Mutex
	got := map[string]int{}

	n.Subscribe(func(ev ChangeEvent) { mu.Lock(); got["a"]++; mu.Unlock() })
	n.Subscribe(func(ev ChangeEvent) { mu.Lock(); got["b"]++; mu.Unlock() })

	n.Publish(NewChange(EntityGuide, OpCreate, "g1", time.Now()))

	assert.Equal(t, map[string]int{"a": 1, "b": 1}, got)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	calls := 0
	unsub := n.Subscribe(func(ChangeEvent) { calls++ })

	n.Publish(NewChange(EntityReview, OpCreate, "r1", time.Now()))
	unsub()
	unsub()
	n.Publish(NewChange(EntityReview, OpCreate, "r2", time.Now()))

	assert.Equal(t, 1, calls)
	assert.Zero(t, n.Len())
}

func TestNotifier_PanickingListenerDoesNotStopOthers(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	delivered := 0
	n.Subscribe(func(ChangeEvent) { panic("boom") })
	n.Subscribe(func(ChangeEvent) { delivered++ })

	assert.NotPanics(t, func() {
		n.Publish(NewChange(EntityDatabase, OpClear, "", time.Now()))
	})
	assert.Equal(t, 1, delivered)
}

func TestNewChange(t *testing.T) {
	now := time.Now()
	ev := NewChange(EntityGuide, OpDelete, "g9", now)

	assert.Equal(t, TypeDatabaseUpdate, ev.Type)
	assert.Equal(t, EntityGuide, ev.Entity)
	assert.Equal(t, OpDelete, ev.Op)
	assert.Equal(t, "g9", ev.ID)
	assert.Equal(t, now, ev.Timestamp)
}
