package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type historyRepo interface {
	LoadHistory(ctx context.Context) (entity.History, bool, error)
	LoadStep(ctx context.Context) (int, bool, error)

	SaveStep(ctx context.Context, step int) error
	SaveState(ctx context.Context, history entity.History, step int) error
}

// HistoryController owns the game timeline and the step being viewed.
// Calls must be serialized by the caller.
type HistoryController struct {
	logger      *slog.Logger
	historyRepo historyRepo

	history entity.History
	step    int
}

func NewHistoryController(logger *slog.Logger, historyRepo historyRepo) *HistoryController {
	return &HistoryController{
		logger:      logger.With("component", "history_controller"),
		historyRepo: historyRepo,

		history: entity.NewHistory(),
		step:    0,
	}
}

// Initialize - loads history and step, falling back to a fresh game.
func (that *HistoryController) Initialize(ctx context.Context) error {
	log := that.logger.With("method", "Initialize")

	that.history = entity.NewHistory()
	that.step = 0

	history, found, err := that.historyRepo.LoadHistory(ctx)
	if err == nil && found {
		err = history.Validate()
	}

	switch {
	case errors.Is(err, entity.ErrInvalidSnapshot), errors.Is(err, entity.ErrEmptyHistory):
		log.Warn("stored history is corrupted, starting a new game", "error", err)
		found = false
	case err != nil:
		return fmt.Errorf("%w: failed to load history: %w", apperror.ErrPersistence, err)
	}

	if !found {
		return that.persistState(ctx)
	}

	that.history = history
	that.step = history.LastStep()

	step, found, err := that.historyRepo.LoadStep(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load current step: %w", apperror.ErrPersistence, err)
	}

	if !found || !history.HasStep(step) {
		log.Warn("stored step is missing or out of range, using latest move", "step", step, "found", found)
		return that.persistStep(ctx)
	}

	that.step = step

	log.Debug("history restored", "length", history.Len(), "step", step)

	return nil
}

// SelectSquare - plays the next mark on the current board. Illegal moves are ignored.
func (that *HistoryController) SelectSquare(ctx context.Context, cell int) error {
	log := that.logger.With("method", "SelectSquare", "cell", cell)

	if err := that.selectSquare(cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("move ignored", "error", err)
			return nil
		}

		return err
	}

	return that.persistState(ctx)
}

func (that *HistoryController) selectSquare(cell int) error {
	board := that.history.At(that.step)

	if winner := tictactoe.Winner(board); winner != entity.EmptyCell {
		return fmt.Errorf("%w: %s already won", apperror.ErrInvalidMove, winner)
	}

	next, err := tictactoe.ApplyMove(board, cell, tictactoe.NextPlayer(board))
	if err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	that.history = that.history.Branch(that.step, next)
	that.step = that.history.LastStep()

	return nil
}

// Restart - starts a new game and drops the whole timeline.
func (that *HistoryController) Restart(ctx context.Context) error {
	that.history = entity.NewHistory()
	that.step = 0

	return that.persistState(ctx)
}

// JumpToStep - moves the view to an existing snapshot. Out of range steps are ignored.
func (that *HistoryController) JumpToStep(ctx context.Context, step int) error {
	if !that.history.HasStep(step) {
		err := fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrOutOfRangeStep, step, that.history.LastStep())
		that.logger.Debug("jump ignored", "method", "JumpToStep", "error", err)

		return nil
	}

	that.step = step

	return that.persistStep(ctx)
}

// History returns a copy of the timeline.
func (that *HistoryController) History() entity.History {
	return that.history.Clone()
}

// Step returns the index of the displayed snapshot.
func (that *HistoryController) Step() int {
	return that.step
}

func (that *HistoryController) persistState(ctx context.Context) error {
	if err := that.historyRepo.SaveState(ctx, that.history, that.step); err != nil {
		that.logger.Error("failed to persist history", "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrPersistence, err)
	}

	return nil
}

func (that *HistoryController) persistStep(ctx context.Context) error {
	if err := that.historyRepo.SaveStep(ctx, that.step); err != nil {
		that.logger.Error("failed to persist current step", "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrPersistence, err)
	}

	return nil
}
