package static

import "errors"

var (
	ErrNotListening   = errors.New("server is not listening")
	ErrAlreadyStarted = errors.New("server already started")
)
