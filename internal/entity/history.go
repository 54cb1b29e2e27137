package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCell     = errors.New("unknown cell value")
	ErrEmptyHistory    = errors.New("history is empty")
	ErrInvalidSnapshot = errors.New("invalid history snapshot")
)

// History is the ordered log of boards from game start to the latest move.
type History []Board

// NewHistory returns a history holding only the empty board.
func NewHistory() History {
	return History{EmptyBoard()}
}

// Len returns the number of snapshots.
func (that History) Len() int {
	return len(that)
}

// LastStep returns the index of the latest snapshot.
func (that History) LastStep() int {
	return len(that) - 1
}

// HasStep reports whether step points at an existing snapshot.
func (that History) HasStep(step int) bool {
	return step >= 0 && step < len(that)
}

// At returns the snapshot at step.
func (that History) At(step int) Board {
	return that[step]
}

// Branch returns History[0..step] followed by board. The result never shares
// its backing array with the receiver, so later entries of the receiver stay intact.
func (that History) Branch(step int, board Board) History {
	next := make(History, step+2)
	copy(next, that[:step+1])
	next[step+1] = board

	return next
}

// Clone returns an independent copy.
func (that History) Clone() History {
	clone := make(History, len(that))
	copy(clone, that)

	return clone
}

// Validate checks that the history starts from the empty board, that every
// snapshot adds exactly one mark alternating from X, and that nothing follows a win.
func (that History) Validate() error {
	if len(that) == 0 {
		return ErrEmptyHistory
	}

	if that[0] != EmptyBoard() {
		return fmt.Errorf("%w: step 0 is not the empty board", ErrInvalidSnapshot)
	}

	for step := 1; step < len(that); step++ {
		prev, cur := that[step-1], that[step]

		if winner := prev.Winner(); winner != EmptyCell {
			return fmt.Errorf("%w: step %d follows a win by %s", ErrInvalidSnapshot, step, winner)
		}

		want := PlayerX
		if step%2 == 0 {
			want = PlayerO
		}

		changed := 0
		for i := range cur {
			if prev[i] == cur[i] {
				continue
			}

			if prev[i] != EmptyCell || cur[i] != want {
				return fmt.Errorf("%w: step %d, cell %d", ErrInvalidSnapshot, step, i)
			}
			changed++
		}

		if changed != 1 {
			return fmt.Errorf("%w: step %d changes %d cells", ErrInvalidSnapshot, step, changed)
		}
	}

	return nil
}
