package analyses

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Source provenance markers: SourceAI when the provider produced the result,
// SourceFallback when the keyword classifier did.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// TreatmentPhase is one phase of a premium treatment plan.
type TreatmentPhase struct {
	Phase      int      `json:"phase"`
	Title      string   `json:"title"`
	Duration   string   `json:"duration"`
	Treatments []string `json:"treatments"`
}

// Analysis represents a single skin analysis request and its result.
type Analysis struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	Symptoms        string           `json:"symptoms"`
	ImageCount      int              `json:"imageCount"`
	Tier            string           `json:"tier"`
	Status          string           `json:"status"`
	Condition       string           `json:"condition"`
	Confidence      int              `json:"confidence"`
	Severity        string           `json:"severity"`
	Description     string           `json:"description"`
	Recommendations []string         `json:"recommendations"`
	RiskFactors     []string         `json:"riskFactors"`
	VisualFindings  []string         `json:"visualFindings"`
	TreatmentPlan   []TreatmentPhase `json:"treatmentPlan,omitempty"`
	Source          string           `json:"source,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewID generates an opaque analysis identifier.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("analysis-%d-%s", time.Now().UTC().UnixMilli(), suffix)
}

// NormalizeTier maps arbitrary input to a known tier, defaulting to free.
func NormalizeTier(tier string) string {
	if strings.EqualFold(strings.TrimSpace(tier), TierPremium) {
		return TierPremium
	}
	return TierFree
}
