package core

import (
	"errors"
)

var (
	ErrInvalidWindowSize = errors.New("window width and height must be positive")
	ErrAlreadyCreated    = errors.New("engine already created")
	ErrNotCreated        = errors.New("engine not created")
	ErrExtensionMissing  = errors.New("required extension not supported")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrQueueFull         = errors.New("queue is full")
	ErrQueueEmpty        = errors.New("queue is empty")
)
