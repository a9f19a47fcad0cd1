package engine

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotInitialized = errors.New("game not initialized")
	ErrGameOver       = errors.New("game is over")
	ErrRandomSource   = errors.New("random source failed")
	ErrDelivery       = errors.New("failed to deliver response")
)
