package domain

import "errors"

// ErrListenerPanic wraps a panic recovered from an event listener.
var ErrListenerPanic = errors.New("event listener panicked")

// ErrLayoutNotFound is returned when a board layout cannot be found in the store.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrUnknownNode is returned when an adapter references a node id that does not exist.
var ErrUnknownNode = errors.New("unknown node")

// ErrInvalidBoard is returned when a board definition fails validation.
var ErrInvalidBoard = errors.New("invalid board")
