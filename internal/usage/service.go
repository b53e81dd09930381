package usage

import "context"

// DefaultFreeScanLimit is the number of scans a free user gets.
const DefaultFreeScanLimit = 3

const tierPremium = "premium"

// Counter reports how many analyses a user has recorded. Implemented by the
// analyses repository.
type Counter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

// Service answers quota questions by counting recorded scans. There is no
// separate usage ledger: the analyses store is the source of truth, so two
// concurrent submissions near the limit can both pass the check.
type Service struct {
	Counter   Counter
	FreeLimit int
}

// NewService constructs a Service. A non-positive limit falls back to the
// default.
func NewService(counter Counter, freeLimit int) *Service {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeScanLimit
	}
	return &Service{Counter: counter, FreeLimit: freeLimit}
}

// CanScan reports whether the user may start another scan. Premium users are
// exempt from the limit.
func (s *Service) CanScan(ctx context.Context, userID, tier string) (bool, int, error) {
	if tier == tierPremium {
		return true, 0, nil
	}
	used, err := s.Counter.CountByUser(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	return used < s.FreeLimit, used, nil
}

// Summary returns the user's current consumption against their plan.
func (s *Service) Summary(ctx context.Context, userID, tier string) (Usage, error) {
	used, err := s.Counter.CountByUser(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	u := Usage{Tier: tier, Used: used, Limit: s.FreeLimit}
	if tier == tierPremium {
		u.Unlimited = true
		u.Limit = 0
		return u, nil
	}
	if remaining := s.FreeLimit - used; remaining > 0 {
		u.Remaining = remaining
	}
	return u, nil
}
