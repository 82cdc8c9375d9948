package platform

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedIdle struct {
	mu   sync.Mutex
	idle time.Duration
	err  error
}

func (script *scriptedIdle) set(idle time.Duration, err error) {
	script.mu.Lock()
	defer script.mu.Unlock()
	script.idle = idle
	script.err = err
}

func (script *scriptedIdle) IdleDuration() (time.Duration, error) {
	script.mu.Lock()
	defer script.mu.Unlock()
	return script.idle, script.err
}

func TestIdleNotifier_PollPublishesTransitions(t *testing.T) {
	script := &scriptedIdle{}
	notifier := NewIdleNotifier(script, IdleConfig{HideAfter: time.Minute}, nil)
	var got []bool
	notifier.Subscribe(func(hidden bool) { got = append(got, hidden) })

	require.NoError(t, notifier.Poll())
	script.set(2*time.Minute, nil)
	require.NoError(t, notifier.Poll())
	require.NoError(t, notifier.Poll())
	script.set(time.Second, nil)
	require.NoError(t, notifier.Poll())

	assert.Equal(t, []bool{true, false}, got)
}

func TestIdleNotifier_PollReturnsProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	notifier := NewIdleNotifier(&scriptedIdle{err: boom}, IdleConfig{}, nil)
	assert.ErrorIs(t, notifier.Poll(), boom)
	assert.False(t, notifier.Hidden())
}

func TestIdleNotifier_LoopPublishesAndStops(t *testing.T) {
	script := &scriptedIdle{idle: time.Hour}
	notifier := NewIdleNotifier(script, IdleConfig{HideAfter: time.Minute, CheckInterval: 5 * time.Millisecond}, nil)

	notifier.Start()
	notifier.Start()
	require.Eventually(t, notifier.Hidden, time.Second, 5*time.Millisecond)

	notifier.Stop()
	notifier.Stop()
	assert.False(t, notifier.Running())
}

func TestIdleNotifier_UnsupportedStopsPolling(t *testing.T) {
	notifier := NewIdleNotifier(&scriptedIdle{err: ErrIdleUnsupported}, IdleConfig{CheckInterval: 5 * time.Millisecond}, nil)

	notifier.Start()
	require.Eventually(t, func() bool { return !notifier.Running() }, time.Second, 5*time.Millisecond)
	notifier.Stop()
}
