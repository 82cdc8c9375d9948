package storage

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"screentimer/internal/ui/preferences"
)

// Watch reloads the settings file whenever it is written, created or renamed into
// place and hands the result to onChange. The parent directory is watched so that
// editors replacing the file atomically are picked up. The returned stop function
// closes the watcher and waits for the loop to exit.
func Watch(configPath string, onChange func(preferences.Settings, error)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(configPath)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				settings, loadErr := LoadSettingsFile(configPath)
				onChange(settings, loadErr)
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onChange(preferences.Settings{}, fmt.Errorf("settings watcher: %w", watchErr))
			}
		}
	}()

	return func() error {
		err := watcher.Close()
		<-done
		return err
	}, nil
}
