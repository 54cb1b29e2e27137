package cli

import (
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command of the tictactoe binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Tic-tac-toe with a persisted, navigable move history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yml", "path to the YAML config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))

	return cmd
}

func (that *RootOptions) load() (*config.Config, error) {
	return config.Load(that.ConfigPath)
}
