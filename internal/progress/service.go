package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid progress input")

// Service records and lists self-reported progress entries.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput is the payload for a new progress entry.
type CreateInput struct {
	UserID           string
	AnalysisID       string
	Date             string
	Photos           []string
	SymptomsRating   int
	Notes            string
	ImprovementScore int
}

// Create validates and persists a progress entry. Ratings are 1-10 as
// reported by the client UI.
func (s *Service) Create(ctx context.Context, input CreateInput) (Entry, error) {
	if strings.TrimSpace(input.AnalysisID) == "" || strings.TrimSpace(input.Date) == "" {
		return Entry{}, ErrInvalidInput
	}
	if input.SymptomsRating < 1 || input.SymptomsRating > 10 {
		return Entry{}, ErrInvalidInput
	}
	if input.ImprovementScore < 0 || input.ImprovementScore > 100 {
		return Entry{}, ErrInvalidInput
	}

	entry := Entry{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		AnalysisID:       input.AnalysisID,
		Date:             input.Date,
		Photos:           input.Photos,
		SymptomsRating:   input.SymptomsRating,
		Notes:            input.Notes,
		ImprovementScore: input.ImprovementScore,
		CreatedAt:        time.Now().UTC(),
	}
	if entry.Photos == nil {
		entry.Photos = []string{}
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// ListByAnalysis returns a user's progress entries for one analysis, newest
// first.
func (s *Service) ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Entry, error) {
	return s.Repo.ListByAnalysis(ctx, userID, analysisID)
}
