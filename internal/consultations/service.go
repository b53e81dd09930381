package consultations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"skinsano-backend/internal/doctors"
)

var (
	ErrUnknownDoctor = errors.New("unknown doctor")
	ErrInvalidInput  = errors.New("invalid consultation input")
)

// Service books and lists consultations against the doctor directory.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// BookInput is the payload for a new consultation.
type BookInput struct {
	UserID        string
	DoctorID      string
	Type          string
	ScheduledDate string
	ScheduledTime string
}

// Book validates the slot against the doctor directory and persists the
// consultation. The price is always taken from the directory, never from the
// client.
func (s *Service) Book(ctx context.Context, input BookInput) (Consultation, error) {
	if strings.TrimSpace(input.DoctorID) == "" ||
		strings.TrimSpace(input.ScheduledDate) == "" ||
		strings.TrimSpace(input.ScheduledTime) == "" {
		return Consultation{}, ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", input.ScheduledDate); err != nil {
		return Consultation{}, ErrInvalidInput
	}

	doctor, ok := doctors.GetByID(input.DoctorID)
	if !ok {
		return Consultation{}, ErrUnknownDoctor
	}

	consultationType := strings.ToLower(strings.TrimSpace(input.Type))
	if consultationType == "" {
		consultationType = doctors.ConsultationVideo
	}
	supported := false
	for _, t := range doctor.ConsultationTypes {
		if t == consultationType {
			supported = true
			break
		}
	}
	if !supported {
		return Consultation{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	consultation := Consultation{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		Type:          consultationType,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Price:         doctor.Price,
		Status:        StatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, consultation); err != nil {
		return Consultation{}, err
	}
	return consultation, nil
}

// Get returns a consultation owned by the given user.
func (s *Service) Get(ctx context.Context, consultationID, userID string) (Consultation, error) {
	consultation, err := s.Repo.GetByID(ctx, consultationID)
	if err != nil {
		return Consultation{}, err
	}
	if consultation.UserID != userID {
		return Consultation{}, ErrNotFound
	}
	return consultation, nil
}

// ListByUser returns a user's consultations, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Consultation, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Cancel marks a consultation cancelled.
func (s *Service) Cancel(ctx context.Context, consultationID, userID string) error {
	if _, err := s.Get(ctx, consultationID, userID); err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, consultationID, StatusCancelled)
}
