package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groveworks/moodscape/common"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()

	var got []string
	b.MoodRequested.Subscribe(func(e MoodRequested) {
		got = append(got, e.Mood)
	})

	b.MoodRequested.Publish(MoodRequested{Mood: "Feurig"})
	b.MoodRequested.Publish(MoodRequested{Mood: "Mystisch"})

	assert.Equal(t, []string{"Feurig", "Mystisch"}, got)
}

func TestSubscribersRunInSubscriptionOrder(t *testing.T) {
	b := New()

	var order []int
	b.MoodApplied.Subscribe(func(MoodApplied) { order = append(order, 1) })
	b.MoodApplied.Subscribe(func(MoodApplied) { order = append(order, 2) })
	b.MoodApplied.Subscribe(func(MoodApplied) { order = append(order, 3) })

	b.MoodApplied.Publish(MoodApplied{Mood: "Harmonisch"})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	calls := 0
	unsubscribe := b.MoodRequested.Subscribe(func(MoodRequested) { calls++ })

	b.MoodRequested.Publish(MoodRequested{Mood: "a"})
	unsubscribe()
	b.MoodRequested.Publish(MoodRequested{Mood: "b"})

	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	assert.NotPanics(t, unsubscribe)
}

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.MoodApplied.Publish(MoodApplied{Mood: "x", Accent: common.Color{R: 1}})
	})
}

func TestTopicsAreIndependent(t *testing.T) {
	b := New()

	requested := 0
	applied := 0
	b.MoodRequested.Subscribe(func(MoodRequested) { requested++ })
	b.MoodApplied.Subscribe(func(MoodApplied) { applied++ })

	b.MoodRequested.Publish(MoodRequested{Mood: "a"})

	assert.Equal(t, 1, requested)
	assert.Equal(t, 0, applied)
}
