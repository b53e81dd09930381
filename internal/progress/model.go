package progress

import "time"

// Entry is one self-reported progress record tied to an analysis.
type Entry struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	AnalysisID       string    `json:"analysisId"`
	Date             string    `json:"date"`
	Photos           []string  `json:"photos"`
	SymptomsRating   int       `json:"symptomsRating"`
	Notes            string    `json:"notes"`
	ImprovementScore int       `json:"improvementScore"`
	CreatedAt        time.Time `json:"createdAt"`
}
