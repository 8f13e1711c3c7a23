package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLocked   = errors.New("session is referenced by a paid invoice and cannot be modified")
)
