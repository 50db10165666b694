package apperror

import "errors"

var (
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrUnknownAction    = errors.New("unknown action")
)
