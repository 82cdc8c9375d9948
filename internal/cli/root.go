// Package cli implements the screentimer command-line interface using Cobra.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"screentimer/internal/log"
	"screentimer/internal/storage"
	"screentimer/internal/ui/preferences"
)

const appName = "screentimer"

type rootOptions struct {
	configPath string
	verbose    bool
	jsonLogs   bool
	logger     *slog.Logger
}

// NewRootCommand builds the command tree. Running the root command starts the
// desktop app.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Measure how long a page element stays on screen",
		Long: `screentimer samples whether a tracked element is visible on a look interval
and reports the accumulated visible time on a separate report interval.
It pauses while the window is in the background or the user is idle.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			out := stderr
			if out == nil {
				out = cmd.ErrOrStderr()
			}
			options.logger = log.Init(log.Options{
				Verbose:    options.verbose,
				JSONFormat: options.jsonLogs,
				Stderr:     out,
			})
			if options.configPath == "" {
				path, err := storage.SettingsPath(appName)
				if err != nil {
					return err
				}
				options.configPath = path
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(options)
		},
	}

	root.PersistentFlags().StringVar(&options.configPath, "config", "", "settings file (default: user config dir)")
	root.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&options.jsonLogs, "json-logs", false, "write logs as JSON")

	root.AddCommand(newSimulateCommand(options), newConfigCommand(options))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

// loadSettings reads the settings file, falling back to defaults on error.
func (options *rootOptions) loadSettings() preferences.Settings {
	settings, err := storage.LoadSettingsFile(options.configPath)
	if err != nil {
		options.logger.Warn("settings unreadable, using defaults", "path", options.configPath, "error", err)
		return preferences.DefaultSettings()
	}
	return settings
}
