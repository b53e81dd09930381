package progress

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("progress entry not found")

// Repo defines persistence operations for progress entries.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Entry, error)
}
