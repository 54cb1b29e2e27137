package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const playHelp = "commands: 0-8 select square, r restart, j N jump to step N, q quit"

type gameController interface {
	SelectSquare(ctx context.Context, cell int) error
	Restart(ctx context.Context) error
	JumpToStep(ctx context.Context, step int) error
	Projection() usecase.Projection
}

// NewPlayCommand runs the terminal adapter on stdin/stdout.
func NewPlayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.load()
			if err != nil {
				return err
			}

			// the board owns stdout
			logger := app.NewLogger(cmd.ErrOrStderr(), conf.LogLevel)

			controller, closeStore, err := app.NewController(cmd.Context(), logger, conf)
			if err != nil {
				return err
			}
			defer closeStore()

			return Play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), controller)
		},
	}
}

// Play - reads one command per line and prints the game after each of them.
func Play(ctx context.Context, in io.Reader, out io.Writer, controller gameController) error {
	render(out, controller.Projection())
	fmt.Fprintln(out, playHelp)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error

		switch cmd := fields[0]; {
		case cmd == "q":
			return nil
		case cmd == "r":
			err = controller.Restart(ctx)
		case cmd == "j" && len(fields) == 2:
			step, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Fprintln(out, playHelp)
				continue
			}
			err = controller.JumpToStep(ctx, step)
		default:
			cell, convErr := strconv.Atoi(cmd)
			if convErr != nil || len(fields) != 1 {
				fmt.Fprintln(out, playHelp)
				continue
			}
			err = controller.SelectSquare(ctx, cell)
		}

		if err != nil {
			if !errors.Is(err, apperror.ErrPersistence) {
				return err
			}
			fmt.Fprintf(out, "warning: %v\n", err)
		}

		render(out, controller.Projection())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}

	return nil
}

func render(out io.Writer, projection usecase.Projection) {
	fmt.Fprintf(out, "\n%s\n\n%s\n", projection.Squares, projection.Status)

	for _, label := range projection.History {
		marker := " "
		if label.Current {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %d. %s\n", marker, label.Step, label.Label)
	}
}
