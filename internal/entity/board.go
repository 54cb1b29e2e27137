package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
	EmptyCell Cell = ""
)

// BoardSize is the number of cells on a board.
const BoardSize = 9

// WinCombos lists every line in evaluation order: rows top to bottom,
// columns left to right, then the main and anti diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cell is the occupancy of one square.
type Cell string

// IsPlayer reports whether the cell holds a mark.
func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*that = EmptyCell
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode cell: %w", err)
	}

	switch cell := Cell(raw); cell {
	case EmptyCell, PlayerX, PlayerO:
		*that = cell
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, raw)
	}
}

// Board is a row-major snapshot of the nine cells.
type Board [BoardSize]Cell

// EmptyBoard returns a board with every cell empty.
func EmptyBoard() Board {
	return Board{}
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: board has %d cells", ErrInvalidSnapshot, len(cells))
	}

	copy(that[:], cells)

	return nil
}

// Winner returns the mark of the first completed line in WinCombos order, or EmptyCell.
func (that Board) Winner() Cell {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsFull reports whether no cell is empty.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Count returns how many cells hold the given mark.
func (that Board) Count(mark Cell) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// String renders the board as three rows, empty cells shown by their index.
func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("\n---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			idx := row*3 + col
			if that[idx] == EmptyCell {
				fmt.Fprintf(&sb, " %d ", idx)
			} else {
				fmt.Fprintf(&sb, " %s ", that[idx])
			}
		}
	}

	return sb.String()
}
