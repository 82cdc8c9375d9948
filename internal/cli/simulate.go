package cli

import (
	"time"

	"github.com/spf13/cobra"

	"screentimer/internal/session"
)

func newSimulateCommand(options *rootOptions) *cobra.Command {
	var (
		duration    time.Duration
		scrollEvery time.Duration
		hideFor     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the timer headless against a scripted page",
		Long: `simulate runs the timer on virtual time against a page that scrolls the
tracked card in and out of view, printing every timer event.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := session.Simulate(session.SimulateOptions{
				Settings:    options.loadSettings(),
				Duration:    duration,
				ScrollEvery: scrollEvery,
				HideFor:     hideFor,
				Out:         cmd.OutOrStdout(),
				Logger:      options.logger,
			})
			return err
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 30*time.Second, "virtual time to simulate")
	cmd.Flags().DurationVar(&scrollEvery, "scroll-every", 5*time.Second, "how often the page scrolls the card in or out")
	cmd.Flags().DurationVar(&hideFor, "hide-for", 0, "hide the page for this long halfway through")
	return cmd
}
