package users

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the user identity from a verified token so history
// and usage ownership stay stable across sessions.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// TierOf resolves the plan tier for a user. Unknown users are on the free
// tier.
func (s *Service) TierOf(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "free", nil
		}
		return "", err
	}
	return user.Tier(), nil
}

// Upgrade marks a user as premium. Called after a verified payment.
func (s *Service) Upgrade(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	err := s.Repo.SetPremium(ctx, userID, true)
	if errors.Is(err, ErrNotFound) {
		// First contact via payment: record the user so the upgrade sticks.
		return s.Repo.Upsert(ctx, User{ID: userID, Email: userID, Premium: true})
	}
	return err
}
