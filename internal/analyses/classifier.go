package analyses

import "strings"

// conditionRule associates a condition with the keywords that suggest it.
type conditionRule struct {
	Condition   string
	Description string
	Keywords    []string
}

// conditionTable is evaluated in declared order; on equal scores the first
// declared condition wins.
var conditionTable = []conditionRule{
	{
		Condition:   "Acne",
		Description: "Acne vulgaris, a common skin condition affecting hair follicles.",
		Keywords:    []string{"pimples", "pimple", "blackheads", "whiteheads", "breakouts", "oily skin", "comedones", "acne"},
	},
	{
		Condition:   "Eczema",
		Description: "Eczema (atopic dermatitis), a chronic inflammatory skin condition.",
		Keywords:    []string{"dry", "itchy", "itch", "red patches", "flaky", "scaly", "atopic dermatitis"},
	},
	{
		Condition:   "Psoriasis",
		Description: "Psoriasis, an autoimmune skin condition with rapid cell turnover.",
		Keywords:    []string{"thick", "silvery", "plaques", "scaling", "psoriasis"},
	},
	{
		Condition:   "Contact Dermatitis",
		Description: "Contact dermatitis, skin inflammation from allergens or irritants.",
		Keywords:    []string{"contact", "allergic", "irritant", "rash", "inflammation", "burning"},
	},
	{
		Condition:   "Rosacea",
		Description: "Rosacea, a chronic inflammatory facial skin condition.",
		Keywords:    []string{"facial redness", "flushing", "bumps", "stinging", "rosacea"},
	},
}

const (
	fallbackConfidencePerMatch = 20
	fallbackConfidenceCap      = 85
	fallbackConfidenceDefault  = 70
)

// Classification is a heuristic condition guess.
type Classification struct {
	Condition   string
	Confidence  int
	Description string
}

// Classify maps free-text symptoms to the best-matching condition by
// case-insensitive keyword count. It is pure and always returns an answer:
// with no keyword match anywhere it falls back to a generic label at the
// floor of the allowed confidence range.
func Classify(symptoms string) Classification {
	lower := strings.ToLower(symptoms)

	best := Classification{}
	for _, rule := range conditionTable {
		matches := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		confidence := matches * fallbackConfidencePerMatch
		if confidence > fallbackConfidenceCap {
			confidence = fallbackConfidenceCap
		}
		if confidence > best.Confidence {
			best = Classification{
				Condition:   rule.Condition,
				Confidence:  confidence,
				Description: rule.Description,
			}
		}
	}

	if best.Condition == "" {
		return Classification{
			Condition:   "Dermatological Condition",
			Confidence:  fallbackConfidenceDefault,
			Description: "A general skin condition requiring professional evaluation.",
		}
	}
	return best
}

// DeriveSeverity inspects the symptom text for severity trigger words. This
// is a separate pass from condition matching; the two can disagree.
func DeriveSeverity(symptoms string) string {
	lower := strings.ToLower(symptoms)
	if strings.Contains(lower, "severe") || strings.Contains(lower, "painful") {
		return SeveritySevere
	}
	if strings.Contains(lower, "mild") {
		return SeverityMild
	}
	return SeverityModerate
}
