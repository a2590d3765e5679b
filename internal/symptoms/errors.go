package symptoms

import "errors"

var (
	// ErrMissingSymptom is returned when the symptom text is empty
	ErrMissingSymptom = errors.New("symptom is required")

	// ErrMissingSession is returned when no session id is supplied
	ErrMissingSession = errors.New("session id is required")

	// ErrInvalidSeverity is returned when severity is outside 1-10
	ErrInvalidSeverity = errors.New("severity must be between 1 and 10")
)
