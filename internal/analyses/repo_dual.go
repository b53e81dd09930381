package analyses

import (
	"context"
	"errors"
	"sort"

	"skinsano-backend/internal/shared/telemetry"
)

// DualRepo writes to a remote repo first and falls back to a local in-memory
// repo per operation, so a database outage degrades to process-lifetime
// persistence instead of failing requests. Records that land in the local
// repo are not reconciled back to the remote one.
type DualRepo struct {
	Remote Repo
	Local  *MemoryRepo
}

// NewDualRepo constructs a DualRepo over a remote repo. A nil remote means
// local-only persistence.
func NewDualRepo(remote Repo) *DualRepo {
	return &DualRepo{Remote: remote, Local: NewMemoryRepo()}
}

// Create stores the analysis remotely, falling back to the local repo.
func (r *DualRepo) Create(ctx context.Context, analysis Analysis) error {
	if r.Remote != nil {
		err := r.Remote.Create(ctx, analysis)
		if err == nil {
			return nil
		}
		logRepoFallback("create", analysis.ID, err)
	}
	return r.Local.Create(ctx, analysis)
}

// Update updates the remote record, falling back to a local upsert so a
// result computed during an outage is never discarded.
func (r *DualRepo) Update(ctx context.Context, analysis Analysis) error {
	if r.Remote != nil {
		err := r.Remote.Update(ctx, analysis)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			logRepoFallback("update", analysis.ID, err)
		}
	}
	err := r.Local.Update(ctx, analysis)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return r.Local.Create(ctx, analysis)
}

// GetByID checks the local repo first, then the remote one. Locally stored
// records only exist when the remote path failed, so local is authoritative
// for them.
func (r *DualRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	analysis, err := r.Local.GetByID(ctx, analysisID)
	if err == nil {
		return analysis, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Analysis{}, err
	}
	if r.Remote == nil {
		return Analysis{}, ErrNotFound
	}
	return r.Remote.GetByID(ctx, analysisID)
}

// ListByUser merges remote and local records, deduplicating by ID with the
// local copy winning, ordered newest-first.
func (r *DualRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	local, err := r.Local.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	var remote []Analysis
	if r.Remote != nil {
		remote, err = r.Remote.ListByUser(ctx, userID, limit)
		if err != nil {
			logRepoFallback("list", userID, err)
			remote = nil
		}
	}

	seen := make(map[string]struct{}, len(local))
	merged := make([]Analysis, 0, len(local)+len(remote))
	for _, a := range local {
		seen[a.ID] = struct{}{}
		merged = append(merged, a)
	}
	for _, a := range remote {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		merged = append(merged, a)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if limit > 0 && limit < len(merged) {
		merged = merged[:limit]
	}
	return merged, nil
}

// CountByUser counts a user's records across both repos. A record can live
// in both when an update fell back locally after a remote create, so local
// records only add to the remote count when the remote has never seen their
// ID. Ambiguous lookups lean low: quota checks must not overcount.
func (r *DualRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	local, err := r.Local.ListByUser(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	if r.Remote == nil {
		return len(local), nil
	}
	count, err := r.Remote.CountByUser(ctx, userID)
	if err != nil {
		logRepoFallback("count", userID, err)
		return len(local), nil
	}
	for _, analysis := range local {
		if _, err := r.Remote.GetByID(ctx, analysis.ID); errors.Is(err, ErrNotFound) {
			count++
		}
	}
	return count, nil
}

func logRepoFallback(op, id string, err error) {
	telemetry.Warn("analyses.repo.fallback", map[string]any{
		"op":    op,
		"id":    id,
		"error": err.Error(),
	})
}

var _ Repo = (*DualRepo)(nil)
