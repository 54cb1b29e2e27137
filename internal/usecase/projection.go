package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const gameStartLabel = "Go To Game Start"

// HistoryLabel is one entry of the move list shown next to the board.
type HistoryLabel struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// Projection is the read-only view handed to presentation adapters.
type Projection struct {
	Squares     entity.Board   `json:"squares"`
	NextPlayer  entity.Cell    `json:"next_player"`
	Winner      entity.Cell    `json:"winner"`
	Status      string         `json:"status"`
	CurrentStep int            `json:"current_step"`
	History     []HistoryLabel `json:"history"`
}

// Projection - derives the view from the current snapshot. Nothing is cached.
func (that *HistoryController) Projection() Projection {
	squares := that.history.At(that.step)
	next := tictactoe.NextPlayer(squares)
	winner := tictactoe.Winner(squares)

	labels := make([]HistoryLabel, that.history.Len())
	for step := range labels {
		labels[step] = HistoryLabel{
			Step:    step,
			Label:   stepLabel(step),
			Current: step == that.step,
		}
	}

	return Projection{
		Squares:     squares,
		NextPlayer:  next,
		Winner:      winner,
		Status:      tictactoe.Status(winner, squares, next),
		CurrentStep: that.step,
		History:     labels,
	}
}

func stepLabel(step int) string {
	if step == 0 {
		return gameStartLabel
	}
	return fmt.Sprintf("Go To Move #%d", step)
}
