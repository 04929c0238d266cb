package history

import "errors"

var (
	ErrNoHistory    = errors.New("no history")
	ErrInvalidPrice = errors.New("invalid price")
)
