// Package bus carries the events that cross the engine/collaborator
// boundary: RFID scans requesting a mood, the landscape generator announcing
// its materials, and the engine confirming an applied mood for the UI layer.
//
// The bus is only for this boundary. Inside the engine, the orchestrator
// calls its subsystems directly so the update ordering stays auditable.
package bus

import (
	"sync"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/vegetation"
)

// MoodRequested is published by the RFID collaborator when a visitor scans a
// card combination.
type MoodRequested struct {
	// Mood is the catalog key resolved from the tree+crop combination.
	Mood string
}

// LandscapeReady is published by the landscape collaborator once terrain and
// vegetation instances exist, handing over the materials the styling
// subsystem mutates.
type LandscapeReady struct {
	Tree   *vegetation.Material
	Crop   *vegetation.Material
	Ground *vegetation.Material
}

// MoodApplied is published by the engine after a mood switch completes, so
// UI widgets can restyle without reaching into the scene.
type MoodApplied struct {
	Mood   string
	Accent common.Color
	Text   common.Color
}

// Topic is a typed publish/subscribe channel. Delivery is synchronous:
// Publish invokes every subscriber on the calling goroutine, in subscription
// order.
type Topic[T any] struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(T)
}

// Subscribe registers a handler and returns an unsubscribe function.
//
// Parameters:
//   - fn: the handler to invoke on every published event
//
// Returns:
//   - func(): removes the subscription
func (t *Topic[T]) Subscribe(fn func(T)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs == nil {
		t.subs = make(map[int]func(T))
	}
	id := t.next
	t.next++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Publish delivers an event to every current subscriber.
//
// Parameters:
//   - event: the event value
func (t *Topic[T]) Publish(event T) {
	t.mu.RLock()
	handlers := make([]func(T), 0, len(t.subs))
	for id := 0; id < t.next; id++ {
		if fn, ok := t.subs[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	t.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}

// Bus bundles the boundary topics.
type Bus struct {
	MoodRequested  Topic[MoodRequested]
	LandscapeReady Topic[LandscapeReady]
	MoodApplied    Topic[MoodApplied]
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}
