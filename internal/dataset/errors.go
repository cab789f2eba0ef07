package dataset

import "errors"

var (
	// ErrFileNotFound is returned when the selected dataset file is absent.
	ErrFileNotFound = errors.New("dataset file not found")
	// ErrSchema is returned when a required column is missing.
	ErrSchema = errors.New("schema error")
	// ErrUnknownMode is returned for a mode token other than auto, real, synthetic or sample.
	ErrUnknownMode = errors.New("unknown dataset mode")
)
