package consultations

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("consultation not found")

// Repo defines persistence operations for consultations.
type Repo interface {
	Create(ctx context.Context, consultation Consultation) error
	GetByID(ctx context.Context, consultationID string) (Consultation, error)
	ListByUser(ctx context.Context, userID string) ([]Consultation, error)
	UpdateStatus(ctx context.Context, consultationID, status string) error
}
