package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Screen Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnTogglePause func()
	OnReset       func()
	OnQuit        func()
}

// Menu is the part of desktop.App the tray needs.
type Menu interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

var _ Menu = desktop.App(nil)

// Manager handles system tray state.
type Manager struct {
	app        Menu
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	callbacks  Callbacks
	paused     bool
	hidden     bool
	visible    time.Duration
}

// New creates a tray manager with the provided callbacks.
func New(app Menu, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.refreshStatus()
	return manager
}

// SetVisible updates the accumulated on-screen time.
func (manager *Manager) SetVisible(visible time.Duration) {
	manager.visible = visible
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetHidden marks the page as hidden or visible.
func (manager *Manager) SetHidden(hidden bool) {
	manager.hidden = hidden
	manager.refreshStatus()
}

// Status returns the current status label.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := "visible " + formatVisible(manager.visible)
	switch {
	case manager.paused:
		status = fmt.Sprintf("%s (paused)", status)
	case manager.hidden:
		status = fmt.Sprintf("%s (hidden)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.pauseItem,
		fyne.NewMenuItem("Reset counter", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

func formatVisible(visible time.Duration) string {
	if visible < 0 {
		visible = 0
	}
	seconds := int(visible.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
