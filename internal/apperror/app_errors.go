package apperror

import "errors"

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrOutOfRangeStep = errors.New("step is out of range")
	ErrPersistence    = errors.New("persistence failure")
)
