package analyses

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSymptoms = errors.New("symptoms description too short")
	ErrLimitReached    = errors.New("scan limit reached")
	ErrPersistence     = errors.New("persistence unavailable")
)

// MinSymptomsLength is the minimum trimmed length of a symptom description.
const MinSymptomsLength = 20

// ParseError reports that a provider response could not be decoded. The
// orchestrator decides the fallback policy; the parser only reports.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse provider response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse provider response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
