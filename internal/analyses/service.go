package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"skinsano-backend/internal/llm"
	"skinsano-backend/internal/shared/metrics"
	"skinsano-backend/internal/shared/telemetry"
)

// Quota decides whether a user may start another scan. Implemented by the
// usage service; kept as an interface here so tests can stub it.
type Quota interface {
	CanScan(ctx context.Context, userID, tier string) (allowed bool, used int, err error)
}

// Service orchestrates analysis submission and retrieval.
type Service struct {
	Repo  Repo
	LLM   llm.Client
	Quota Quota
}

// SubmitInput is the payload for a new analysis.
type SubmitInput struct {
	UserID     string
	Symptoms   string
	ImageCount int
	Tier       string
}

// Submit validates the input, enforces the scan quota, and produces a
// completed analysis. The provider path and the keyword fallback are both
// terminal: a submission only errors when the input is invalid, the quota is
// exhausted, or the record cannot be persisted at all.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Analysis, error) {
	symptoms := strings.TrimSpace(input.Symptoms)
	if utf8.RuneCountInString(symptoms) < MinSymptomsLength {
		return Analysis{}, ErrInvalidSymptoms
	}
	tier := NormalizeTier(input.Tier)

	if s.Quota != nil {
		allowed, used, err := s.Quota.CanScan(ctx, input.UserID, tier)
		if err != nil {
			// Quota storage trouble must not block scans.
			telemetry.Warn("analysis.quota.check_failed", map[string]any{
				"user_id": input.UserID,
				"error":   err.Error(),
			})
		} else if !allowed {
			metrics.IncQuotaRejected()
			telemetry.Info("analysis.quota.rejected", map[string]any{
				"user_id": input.UserID,
				"used":    used,
			})
			return Analysis{}, ErrLimitReached
		}
	}

	metrics.IncAnalysisStarted()
	started := time.Now()
	now := started.UTC()

	record := Analysis{
		ID:         NewID(),
		UserID:     input.UserID,
		Symptoms:   symptoms,
		ImageCount: input.ImageCount,
		Tier:       tier,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	pendingErr := s.Repo.Create(ctx, record)
	if pendingErr != nil {
		telemetry.Warn("analysis.persist.pending_failed", map[string]any{
			"analysis_id": record.ID,
			"error":       pendingErr.Error(),
		})
	}

	result, source := s.analyze(ctx, record)

	record.Status = StatusCompleted
	record.Condition = result.Condition
	record.Confidence = result.Confidence
	record.Severity = result.Severity
	record.Description = result.Description
	record.Recommendations = result.Recommendations
	record.RiskFactors = result.RiskFactors
	record.VisualFindings = result.VisualFindings
	record.Source = source
	if tier == TierPremium {
		record.TreatmentPlan = result.TreatmentPlan
		if record.TreatmentPlan == nil {
			record.TreatmentPlan = defaultTreatmentPlan()
		}
	} else {
		record.TreatmentPlan = nil
	}

	record.UpdatedAt = time.Now().UTC()
	var persistErr error
	if pendingErr == nil {
		persistErr = s.Repo.Update(ctx, record)
	} else {
		persistErr = s.Repo.Create(ctx, record)
	}
	if persistErr != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.persist.failed", map[string]any{
			"analysis_id": record.ID,
			"error":       persistErr.Error(),
		})
		return Analysis{}, fmt.Errorf("%w: %v", ErrPersistence, persistErr)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("analysis.status", map[string]any{
		"analysis_id": record.ID,
		"user_id":     record.UserID,
		"status":      record.Status,
		"source":      record.Source,
		"condition":   record.Condition,
		"confidence":  record.Confidence,
	})
	return record, nil
}

// analyze runs the provider path and degrades to the keyword classifier on
// any provider or parse failure.
func (s *Service) analyze(ctx context.Context, record Analysis) (providerResult, string) {
	if s.LLM != nil {
		prompt := BuildPrompt(record.Symptoms, record.Tier, record.ImageCount)
		raw, err := s.LLM.Generate(ctx, llm.GenerateRequest{Prompt: prompt})
		if err == nil {
			result, parseErr := parseProviderResponse(raw)
			if parseErr == nil {
				return result, SourceAI
			}
			err = parseErr
		}
		telemetry.Warn("analysis.provider.fallback", map[string]any{
			"analysis_id": record.ID,
			"error":       err.Error(),
		})
	}

	metrics.IncAnalysisFallback()
	classification := Classify(record.Symptoms)
	return providerResult{
		Condition:       classification.Condition,
		Confidence:      classification.Confidence,
		Severity:        DeriveSeverity(record.Symptoms),
		Description:     classification.Description,
		Recommendations: append([]string(nil), defaultRecommendations...),
		RiskFactors:     append([]string(nil), defaultRiskFactors...),
		VisualFindings:  append([]string(nil), defaultVisualFindings...),
	}, SourceFallback
}

// Get returns an analysis owned by the given user.
func (s *Service) Get(ctx context.Context, analysisID, userID string) (Analysis, error) {
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// ListByUser returns a user's analyses, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}

func defaultTreatmentPlan() []TreatmentPhase {
	return []TreatmentPhase{
		{
			Phase:    1,
			Title:    "Immediate Care",
			Duration: "1-2 weeks",
			Treatments: []string{
				"Gentle cleansing twice daily",
				"Apply recommended topical treatment",
				"Avoid known irritants",
			},
		},
		{
			Phase:    2,
			Title:    "Maintenance",
			Duration: "2-4 weeks",
			Treatments: []string{
				"Continue treatment as directed",
				"Monitor progress and document changes",
				"Schedule dermatologist follow-up",
			},
		},
	}
}
