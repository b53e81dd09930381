package analyses

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	ConfidenceMin     = 70
	ConfidenceMax     = 95
	confidenceDefault = 80
)

var (
	defaultCondition   = "Skin Condition Detected"
	defaultDescription = "A skin condition has been identified based on the symptoms described."

	defaultRecommendations = []string{
		"Consult with a dermatologist for professional evaluation",
		"Keep the affected area clean and dry",
		"Avoid harsh soaps or irritants",
		"Monitor for any changes in symptoms",
		"Apply gentle, fragrance-free moisturizer if skin is dry",
	}
	defaultRiskFactors = []string{
		"Skin sensitivity",
		"Environmental factors",
		"Genetic predisposition",
	}
	defaultVisualFindings = []string{
		"Skin changes consistent with described symptoms",
	}
)

// providerResult holds the normalized fields projected from a provider
// response.
type providerResult struct {
	Condition       string
	Confidence      int
	Severity        string
	Description     string
	Recommendations []string
	RiskFactors     []string
	VisualFindings  []string
	TreatmentPlan   []TreatmentPhase
}

// parseProviderResponse extracts and normalizes the JSON object embedded in a
// raw provider reply. Decode failures return a *ParseError; once the object
// decodes, individual bad fields degrade to documented defaults instead of
// failing the whole parse.
func parseProviderResponse(raw string) (providerResult, error) {
	cleaned := stripCodeFences(raw)

	span, ok := extractJSONObject(cleaned)
	if !ok {
		return providerResult{}, &ParseError{Reason: "no JSON object found in response"}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(span), &doc); err != nil {
		return providerResult{}, &ParseError{Reason: "invalid JSON object", Err: err}
	}

	return providerResult{
		Condition:       stringField(doc, "condition", defaultCondition),
		Confidence:      confidenceField(doc),
		Severity:        severityField(doc),
		Description:     stringField(doc, "description", defaultDescription),
		Recommendations: stringListField(doc, "recommendations", defaultRecommendations),
		RiskFactors:     stringListField(doc, "riskFactors", defaultRiskFactors),
		VisualFindings:  stringListField(doc, "visualFindings", defaultVisualFindings),
		TreatmentPlan:   treatmentPlanField(doc),
	}, nil
}

func stripCodeFences(raw string) string {
	out := strings.ReplaceAll(raw, "```json", "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}

// extractJSONObject returns the first balanced {...} span, respecting JSON
// string literals and escapes so braces inside values do not confuse the
// scan. Providers routinely wrap the payload in prose on both sides.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func stringField(doc map[string]any, key, def string) string {
	if v, ok := doc[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func confidenceField(doc map[string]any) int {
	switch v := doc["confidence"].(type) {
	case float64:
		return ClampConfidence(int(v))
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(v), "%")
		if parsed, err := strconv.Atoi(trimmed); err == nil {
			return ClampConfidence(parsed)
		}
	}
	return confidenceDefault
}

// ClampConfidence constrains a confidence value into the allowed range. The
// service never claims near-certainty and never claims below-majority
// confidence, regardless of what the provider returned.
func ClampConfidence(v int) int {
	if v < ConfidenceMin {
		return ConfidenceMin
	}
	if v > ConfidenceMax {
		return ConfidenceMax
	}
	return v
}

func severityField(doc map[string]any) string {
	raw, _ := doc["severity"].(string)
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SeverityMild:
		return SeverityMild
	case SeveritySevere:
		return SeveritySevere
	case SeverityModerate:
		return SeverityModerate
	default:
		return SeverityModerate
	}
}

func stringListField(doc map[string]any, key string, defaults []string) []string {
	raw, ok := doc[key].([]any)
	if !ok {
		return append([]string(nil), defaults...)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaults...)
	}
	return out
}

func treatmentPlanField(doc map[string]any) []TreatmentPhase {
	raw, ok := doc["treatmentPlan"].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	plan := make([]TreatmentPhase, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		phase := TreatmentPhase{
			Phase:      i + 1,
			Title:      stringField(entry, "title", "Treatment Phase"),
			Duration:   stringField(entry, "duration", "1-2 weeks"),
			Treatments: stringListField(entry, "treatments", nil),
		}
		if n, ok := entry["phase"].(float64); ok && n > 0 {
			phase.Phase = int(n)
		}
		if len(phase.Treatments) == 0 {
			continue
		}
		plan = append(plan, phase)
	}
	if len(plan) == 0 {
		return nil
	}
	return plan
}
