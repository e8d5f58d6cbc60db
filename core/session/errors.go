package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no session exists for an id.
	ErrNotFound = errors.New("session not found")
	// ErrIDGeneration is returned when no unused session id could be generated.
	ErrIDGeneration = errors.New("failed to generate unique session id")
	// ErrLoadSession is returned when reading a session from the store fails.
	ErrLoadSession = errors.New("failed to load session")
	// ErrSaveSession is returned when saving a session to the store fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
)
