package screentimer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcast_DropsRepeatedStates(t *testing.T) {
	broadcast := NewBroadcast()
	var got []bool
	unsubscribe := broadcast.Subscribe(func(hidden bool) { got = append(got, hidden) })

	broadcast.Publish(false)
	broadcast.Publish(true)
	broadcast.Publish(true)
	broadcast.Publish(false)

	unsubscribe()
	unsubscribe()
	broadcast.Publish(true)

	assert.Equal(t, []bool{true, false}, got)
	assert.True(t, broadcast.Hidden())
}

func TestMerge_HiddenWhileAnySourceIsHidden(t *testing.T) {
	foreground := NewBroadcast()
	idle := NewBroadcast()
	merged := Merge(foreground, idle, nil)
	defer merged.Close()

	var got []bool
	merged.Subscribe(func(hidden bool) { got = append(got, hidden) })

	foreground.Publish(true)
	idle.Publish(true)
	foreground.Publish(false)
	assert.True(t, merged.Hidden())
	idle.Publish(false)

	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, merged.Hidden())
}

func TestMerge_CloseStopsForwarding(t *testing.T) {
	source := NewBroadcast()
	merged := Merge(source)
	merged.Close()

	source.Publish(true)
	assert.False(t, merged.Hidden())
}

func TestMerge_SeedsFromHiddenSources(t *testing.T) {
	paused := NewBroadcast()
	paused.Publish(true)
	foreground := NewBroadcast()

	merged := Merge(foreground, paused)
	defer merged.Close()
	assert.True(t, merged.Hidden())

	var got []bool
	merged.Subscribe(func(hidden bool) { got = append(got, hidden) })

	foreground.Publish(true)
	foreground.Publish(false)
	assert.Empty(t, got, "still hidden by the seeded source")

	paused.Publish(false)
	assert.Equal(t, []bool{false}, got)
}
