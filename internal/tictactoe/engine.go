package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const StatusDraw = "Draw"

// NextPlayer - infers whose turn it is from the marks on the board.
func NextPlayer(board entity.Board) entity.Cell {
	if board.Count(entity.PlayerX) == board.Count(entity.PlayerO) {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// Winner - returns the mark of the first completed line, or EmptyCell.
func Winner(board entity.Board) entity.Cell {
	return board.Winner()
}

// Status - builds the display line for a board.
func Status(winner entity.Cell, board entity.Board, next entity.Cell) string {
	switch {
	case winner != entity.EmptyCell:
		return fmt.Sprintf("Winner: %s", winner)
	case board.IsFull():
		return StatusDraw
	default:
		return fmt.Sprintf("Next player: %s", next)
	}
}

// ApplyMove - returns a copy of the board with the cell taken by player.
func ApplyMove(board entity.Board, cell int, player entity.Cell) (entity.Board, error) {
	if err := validateMove(board, cell, player); err != nil {
		return board, err
	}

	board[cell] = player

	return board, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int, player entity.Cell) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: unknown player %q", apperror.ErrInvalidMove, player)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, cell)
	}

	return nil
}
