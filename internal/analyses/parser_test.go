package analyses

import (
	"errors"
	"testing"
)

func TestParseProviderResponsePlainJSON(t *testing.T) {
	raw := `{
		"condition": "Atopic Dermatitis",
		"confidence": 88,
		"severity": "moderate",
		"description": "Chronic inflammatory skin condition.",
		"recommendations": ["See a dermatologist", "Moisturize daily"],
		"riskFactors": ["Family history"],
		"visualFindings": ["Erythematous patches"]
	}`
	got, err := parseProviderResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Condition != "Atopic Dermatitis" {
		t.Fatalf("condition = %q", got.Condition)
	}
	if got.Confidence != 88 {
		t.Fatalf("confidence = %d", got.Confidence)
	}
	if len(got.Recommendations) != 2 || len(got.RiskFactors) != 1 || len(got.VisualFindings) != 1 {
		t.Fatalf("unexpected list sizes: %+v", got)
	}
	if got.TreatmentPlan != nil {
		t.Fatal("no treatment plan expected")
	}
}

func TestParseProviderResponseStripsFencesAndProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" +
		`{"condition": "Rosacea", "confidence": 75, "severity": "mild"}` +
		"\n```\nLet me know if you need anything else."
	got, err := parseProviderResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Condition != "Rosacea" {
		t.Fatalf("condition = %q", got.Condition)
	}
	if got.Severity != SeverityMild {
		t.Fatalf("severity = %q", got.Severity)
	}
}

func TestParseProviderResponseBracesInsideStrings(t *testing.T) {
	raw := `{"condition": "Acne", "description": "Pattern like {comedones} observed", "confidence": 80}`
	got, err := parseProviderResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "Pattern like {comedones} observed" {
		t.Fatalf("description = %q", got.Description)
	}
}

func TestParseProviderResponseNoObject(t *testing.T) {
	_, err := parseProviderResponse("I cannot provide a diagnosis.")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseProviderResponseMalformedJSON(t *testing.T) {
	_, err := parseProviderResponse(`{"condition": "Acne", "confidence": }`)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseProviderResponseFieldDefaults(t *testing.T) {
	got, err := parseProviderResponse(`{}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Condition != defaultCondition {
		t.Fatalf("condition = %q", got.Condition)
	}
	if got.Confidence != 80 {
		t.Fatalf("confidence = %d, want default 80", got.Confidence)
	}
	if got.Severity != SeverityModerate {
		t.Fatalf("severity = %q, want moderate", got.Severity)
	}
	if len(got.Recommendations) == 0 || len(got.RiskFactors) == 0 || len(got.VisualFindings) == 0 {
		t.Fatal("list fields must never be empty")
	}
}

func TestParseProviderResponseConfidenceClamp(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"confidence": 0}`, 70},
		{`{"confidence": 50}`, 70},
		{`{"confidence": 70}`, 70},
		{`{"confidence": 95}`, 95},
		{`{"confidence": 100}`, 95},
		{`{"confidence": -10}`, 70},
		{`{"confidence": "85"}`, 85},
		{`{"confidence": "85%"}`, 85},
		{`{"confidence": "abc"}`, 80},
	}
	for _, tc := range cases {
		got, err := parseProviderResponse(tc.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		if got.Confidence != tc.want {
			t.Errorf("%s: confidence = %d, want %d", tc.raw, got.Confidence, tc.want)
		}
	}
}

func TestParseProviderResponseSeverityNormalization(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"severity": "Mild"}`, SeverityMild},
		{`{"severity": " SEVERE "}`, SeveritySevere},
		{`{"severity": "critical"}`, SeverityModerate},
		{`{"severity": 5}`, SeverityModerate},
	}
	for _, tc := range cases {
		got, err := parseProviderResponse(tc.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		if got.Severity != tc.want {
			t.Errorf("%s: severity = %q, want %q", tc.raw, got.Severity, tc.want)
		}
	}
}

func TestParseProviderResponseTreatmentPlan(t *testing.T) {
	raw := `{
		"treatmentPlan": [
			{"phase": 1, "title": "Initial", "duration": "1 week", "treatments": ["Cleanse", "Moisturize"]},
			{"title": "no treatments so dropped"},
			"not an object"
		]
	}`
	got, err := parseProviderResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.TreatmentPlan) != 1 {
		t.Fatalf("treatment plan size = %d, want 1", len(got.TreatmentPlan))
	}
	phase := got.TreatmentPlan[0]
	if phase.Phase != 1 || phase.Title != "Initial" || len(phase.Treatments) != 2 {
		t.Fatalf("unexpected phase: %+v", phase)
	}
}

func TestExtractJSONObjectEscapedQuotes(t *testing.T) {
	span, ok := extractJSONObject(`noise {"a": "quote \" and brace }"} trailing`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if span != `{"a": "quote \" and brace }"}` {
		t.Fatalf("span = %q", span)
	}
}
