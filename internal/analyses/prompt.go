package analyses

import (
	"fmt"
	"strings"
)

const promptTreatmentPlanSection = `,
  "treatmentPlan": [
    {
      "phase": 1,
      "title": "Initial Treatment",
      "duration": "1-2 weeks",
      "treatments": ["Primary treatment with specific instructions", "Supportive care measure"]
    },
    {
      "phase": 2,
      "title": "Maintenance",
      "duration": "2-4 weeks",
      "treatments": ["Long-term management", "Prevention strategy"]
    }
  ]`

// BuildPrompt produces the deterministic instruction text sent to the
// provider. The symptom text is quoted so it cannot break the template, and
// the output contract (field names, enums, confidence range, policy lines)
// is spelled out so unit tests can assert on exact substrings.
func BuildPrompt(symptoms, tier string, imageCount int) string {
	var b strings.Builder

	b.WriteString("You are a professional dermatologist AI assistant. Analyze the following skin condition symptoms and provide a medical assessment.\n\n")
	fmt.Fprintf(&b, "PATIENT SYMPTOMS: %q\n", symptoms)
	fmt.Fprintf(&b, "ANALYSIS TYPE: %s\n", NormalizeTier(tier))
	if imageCount > 0 {
		b.WriteString("IMAGES PROVIDED: Yes\n")
	} else {
		b.WriteString("IMAGES PROVIDED: No\n")
	}

	b.WriteString(`
Provide your analysis in this EXACT JSON format:

{
  "condition": "Primary skin condition diagnosis",
  "confidence": 85,
  "severity": "mild|moderate|severe",
  "description": "Detailed medical description of the condition",
  "recommendations": ["Primary treatment recommendation", "Secondary care instruction", "Lifestyle modification", "Follow-up guidance"],
  "riskFactors": ["Primary risk factor", "Secondary risk factor", "Environmental factor"],
  "visualFindings": ["Key visual characteristic observed", "Secondary finding", "Distribution pattern"]`)
	if NormalizeTier(tier) == TierPremium {
		b.WriteString(promptTreatmentPlanSection)
	}
	b.WriteString("\n}\n")

	b.WriteString(`
IMPORTANT:
- Base the diagnosis on the symptoms described
- Use medical terminology appropriately
- Provide a confidence level between 70 and 95
- Never claim 100% confidence
- Always recommend professional consultation for serious conditions
- Return ONLY the JSON object, no additional text
`)

	return b.String()
}
