package consultations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores consultations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Consultation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Consultation)}
}

func (r *MemoryRepo) Create(ctx context.Context, consultation Consultation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[consultation.ID] = consultation
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, consultationID string) (Consultation, error) {
	if err := ctx.Err(); err != nil {
		return Consultation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	consultation, ok := r.byID[consultationID]
	if !ok {
		return Consultation{}, ErrNotFound
	}
	return consultation, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Consultation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Consultation
	for _, consultation := range r.byID {
		if consultation.UserID == userID {
			out = append(out, consultation)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, consultationID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	consultation, ok := r.byID[consultationID]
	if !ok {
		return ErrNotFound
	}
	consultation.Status = status
	consultation.UpdatedAt = time.Now().UTC()
	r.byID[consultationID] = consultation
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
