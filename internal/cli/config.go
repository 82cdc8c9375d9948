package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"screentimer/internal/storage"
)

func newConfigCommand(options *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := storage.LoadSettingsFile(options.configPath)
			if err != nil {
				return err
			}
			if save {
				if err := storage.SaveSettingsFile(options.configPath, settings); err != nil {
					return err
				}
			}

			serialized, err := storage.MarshalSettings(settings)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", options.configPath, serialized)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "write the resolved settings back to the file")
	return cmd
}
