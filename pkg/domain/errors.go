package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptyCallback is returned when a button press carries no data.
var ErrEmptyCallback = errors.New("callback without data")

// ErrUnknownCallback is returned when a button press carries data the bot never offered.
var ErrUnknownCallback = errors.New("unknown callback data")
