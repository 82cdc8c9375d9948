package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"screentimer/internal/core/schedule"
	"screentimer/internal/core/visibility"
	"screentimer/internal/platform"
	"screentimer/internal/session"
	"screentimer/internal/storage"
	"screentimer/internal/ui/fynehost"
	"screentimer/internal/ui/page"
	"screentimer/internal/ui/preferences"
	"screentimer/internal/ui/tray"
	"screentimer/resources"
)

func runDesktop(options *rootOptions) error {
	logger := options.logger
	lock, err := platform.AcquireInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("screentimer is already running", "detail", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = lock.Release()
	}()
	logger.Debug("instance lock held", "address", lock.Address())

	settings := options.loadSettings()

	fyneApp := app.NewWithID("com.screentimer.app")
	activeIcon := resources.MustIcon("eye_active.svg")
	pausedIcon := resources.MustIcon("eye_paused.svg")
	fyneApp.SetIcon(activeIcon)

	lead, tail, err := resources.Article()
	if err != nil {
		return err
	}
	pageWindow := page.New(fyneApp, page.Content{Lead: lead, Tail: tail})
	go lock.Serve(func() {
		fyne.Do(func() {
			pageWindow.Show()
			pageWindow.Window().RequestFocus()
		})
	})

	viewport := fynehost.NewScrollViewport(pageWindow.Scroll())
	element := visibility.Resolver(func() visibility.Element {
		card := pageWindow.Card()
		if card == nil {
			return nil
		}
		return viewport.Element(card)
	})

	ticker := schedule.NewTicker(func(err error) {
		logger.Warn("timer tick failed", "error", err)
	})

	var trayManager *tray.Manager
	timers, err := session.New(session.Deps{
		Scheduler:    fynehost.NewScheduler(ticker),
		Viewport:     viewport,
		Element:      element,
		Foreground:   fynehost.NewLifecycleNotifier(fyneApp.Lifecycle()),
		IdleProvider: platform.NewIdleProvider(),
		Logger:       logger,
	}, settings, func(totals session.Totals) {
		fyne.Do(func() {
			pageWindow.SetVisible(totals.Visible, totals.Reports)
			if trayManager != nil {
				trayManager.SetVisible(totals.Visible)
			}
		})
	})
	if err != nil {
		return fmt.Errorf("start timer: %w", err)
	}

	setPaused := func(paused bool) {
		pageWindow.SetStatus(statusText(paused))
		if trayManager != nil {
			trayManager.SetPaused(paused)
		}
		if desktopApp, ok := fyneApp.(desktop.App); ok {
			if paused {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			} else {
				desktopApp.SetSystemTrayIcon(activeIcon)
			}
		}
	}

	apply := func(updated preferences.Settings) {
		if updated == timers.Settings() {
			return
		}
		if err := timers.Apply(updated); err != nil {
			logger.Warn("settings rejected", "error", err)
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettingsFile(options.configPath, updated); err != nil {
			logger.Warn("save settings", "path", options.configPath, "error", err)
		}
		apply(updated)
	})

	if err := os.MkdirAll(filepath.Dir(options.configPath), 0o755); err != nil {
		logger.Warn("create config directory", "error", err)
	}
	stopWatch, err := storage.Watch(options.configPath, func(updated preferences.Settings, err error) {
		if err != nil {
			logger.Warn("settings reload failed", "error", err)
			return
		}
		fyne.Do(func() {
			prefsWindow.UpdateSettings(updated)
			apply(updated)
		})
	})
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		stopWatch = func() error { return nil }
	}

	quit := func() {
		timers.Close()
		if err := stopWatch(); err != nil {
			logger.Warn("stop settings watcher", "error", err)
		}
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnPreferences: prefsWindow.Show,
			OnTogglePause: func() {
				setPaused(timers.TogglePause())
			},
			OnReset: timers.Reset,
			OnQuit:  quit,
		})
		desktopApp.SetSystemTrayIcon(activeIcon)
		timers.SetOnHidden(func(hidden bool) {
			fyne.Do(func() {
				trayManager.SetHidden(hidden)
			})
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	pageWindow.SetOnToggle(func(mounted bool) {
		logger.Debug("tracked card toggled", "mounted", mounted)
	})
	pageWindow.Window().SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Timer",
		fyne.NewMenuItem("Preferences", prefsWindow.Show),
		fyne.NewMenuItem("Pause / Resume", func() {
			setPaused(timers.TogglePause())
		}),
		fyne.NewMenuItem("Reset counter", timers.Reset),
	)))
	pageWindow.Window().SetOnClosed(quit)

	logger.Info("screentimer running", "config", options.configPath)
	pageWindow.Show()
	fyneApp.Run()
	timers.Close()
	return nil
}

func statusText(paused bool) string {
	if paused {
		return "paused"
	}
	return "running"
}
