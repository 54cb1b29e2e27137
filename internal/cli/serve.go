package cli

import (
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
)

// NewServeCommand runs the HTTP adapter.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.load()
			if err != nil {
				return err
			}

			logger := app.NewLogger(cmd.OutOrStdout(), conf.LogLevel)

			return app.RunApp(logger, conf)
		},
	}
}
