package fynehost

import (
	"screentimer/internal/core/screentimer"
)

// Lifecycle is the part of fyne.Lifecycle the notifier needs.
type Lifecycle interface {
	SetOnEnteredForeground(func())
	SetOnExitedForeground(func())
}

// LifecycleNotifier turns application foreground changes into page visibility
// notifications. It takes over both foreground hooks of the lifecycle.
type LifecycleNotifier struct {
	*screentimer.Broadcast
}

// NewLifecycleNotifier installs the foreground hooks on lifecycle.
func NewLifecycleNotifier(lifecycle Lifecycle) *LifecycleNotifier {
	notifier := &LifecycleNotifier{Broadcast: screentimer.NewBroadcast()}
	lifecycle.SetOnExitedForeground(func() {
		notifier.Publish(true)
	})
	lifecycle.SetOnEnteredForeground(func() {
		notifier.Publish(false)
	})
	return notifier
}
