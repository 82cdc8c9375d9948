package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"screentimer/internal/core/model"
	"screentimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// yamlSettings uses pointers so that a key missing from the file keeps its
// default while an explicit zero is still applied.
type yamlSettings struct {
	LookIntervalMillis    *int     `yaml:"look_interval_ms,omitempty"`
	ReportIntervalSeconds *int     `yaml:"report_interval_seconds,omitempty"`
	Threshold             *float64 `yaml:"threshold,omitempty"`
	OversizePolicy        *string  `yaml:"oversize_policy,omitempty"`
	Strategy              *string  `yaml:"intersection_strategy,omitempty"`
	IdleEnabled           *bool    `yaml:"idle_enabled,omitempty"`
	IdleAfterSeconds      *int     `yaml:"idle_after_seconds,omitempty"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettingsFile reads preferences from configPath. A missing file yields defaults.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&settings, fileData); err != nil {
		return preferences.DefaultSettings(), fmt.Errorf("apply settings: %w", err)
	}
	return settings, nil
}

// SaveSettingsFile writes preferences to configPath, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// MarshalSettings renders settings in the on-disk YAML form.
func MarshalSettings(settings preferences.Settings) ([]byte, error) {
	lookMillis := int(settings.LookInterval / time.Millisecond)
	reportSeconds := int(settings.ReportInterval / time.Second)
	threshold := settings.Threshold
	policy := string(settings.Oversize)
	strategy := string(settings.Strategy)
	idleEnabled := settings.IdlePauseEnabled
	idleSeconds := int(settings.IdlePauseAfter / time.Second)

	serialized, err := yaml.Marshal(yamlSettings{
		LookIntervalMillis:    &lookMillis,
		ReportIntervalSeconds: &reportSeconds,
		Threshold:             &threshold,
		OversizePolicy:        &policy,
		Strategy:              &strategy,
		IdleEnabled:           &idleEnabled,
		IdleAfterSeconds:      &idleSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// applyYamlSettings copies present keys and validates the timer part through
// the same rules the timer applies at construction.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) error {
	if fileData.LookIntervalMillis != nil {
		settings.LookInterval = time.Duration(*fileData.LookIntervalMillis) * time.Millisecond
	}
	if fileData.ReportIntervalSeconds != nil {
		settings.ReportInterval = time.Duration(*fileData.ReportIntervalSeconds) * time.Second
	}
	if fileData.Threshold != nil {
		settings.Threshold = *fileData.Threshold
	}
	if fileData.OversizePolicy != nil {
		settings.Oversize = model.OversizePolicy(*fileData.OversizePolicy)
	}
	if fileData.Strategy != nil {
		settings.Strategy = model.Strategy(*fileData.Strategy)
	}
	if fileData.IdleEnabled != nil {
		settings.IdlePauseEnabled = *fileData.IdleEnabled
	}
	if fileData.IdleAfterSeconds != nil {
		if *fileData.IdleAfterSeconds <= 0 {
			return fmt.Errorf("idle_after_seconds must be positive, got %d", *fileData.IdleAfterSeconds)
		}
		settings.IdlePauseAfter = time.Duration(*fileData.IdleAfterSeconds) * time.Second
	}

	if _, err := settings.TimerOptions().Resolve(); err != nil {
		return err
	}
	return nil
}
