package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrAnalysisAlreadyRecorded is returned when an entry already carries an analysis.
	ErrAnalysisAlreadyRecorded = errors.New("analysis already recorded for entry")
	// ErrDuplicateEmail is returned when registering an email that is already in use.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNoTransaction is returned by session operations that need Begin first.
	ErrNoTransaction = errors.New("no transaction in progress")
)
