package model

import "time"

// MatchLevel classifies a section's overall coverage.
type MatchLevel string

const (
	LevelFullyCompliant     MatchLevel = "Fully Compliant"
	LevelPartiallyCompliant MatchLevel = "Partially Compliant"
	LevelNonCompliant       MatchLevel = "Non-Compliant"
)

// Severity ranks how badly a section falls short. SeverityNone is used for
// fully compliant sections.
type Severity string

const (
	SeverityNone   Severity = "N/A"
	SeverityMinor  Severity = "Minor"
	SeverityMedium Severity = "Medium"
	SeverityMajor  Severity = "Major"
)

// SectionReport is the complete per-section result. It is derived
// deterministically from the section's verdicts and never mutated after
// construction.
type SectionReport struct {
	Section          string             `json:"dpdpa_section"`
	Meaning          string             `json:"dpdpa_section_meaning"`
	Verdicts         []ChecklistVerdict `json:"checklist_items"`
	MatchedIDs       []string           `json:"checklist_items_matched"`
	MatchLevel       MatchLevel         `json:"match_level"`
	Severity         Severity           `json:"severity"`
	ComplianceScore  float64            `json:"compliance_points"`
	SuggestedRewrite string             `json:"suggested_rewrite"`

	// Error is set when the section could not be analyzed at all
	// (e.g. a malformed checklist). Other sections still proceed.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the section's analysis was aborted.
func (r SectionReport) Failed() bool {
	return r.Error != ""
}

// Assessment is the cross-section summary for one analysis run.
type Assessment struct {
	RunID     string          `json:"run_id"`
	CheckedAt time.Time       `json:"checked_at"`
	Provider  string          `json:"provider,omitempty"`
	Model     string          `json:"model,omitempty"`
	Sections  []SectionReport `json:"sections"`

	// OverallScore is sum(compliance points) / section count * 100.
	// Failed sections contribute 0.0, never a division error.
	OverallScore float64 `json:"overall_score"`
}

// ComputeOverallScore recalculates the overall percentage from the section
// reports. An empty assessment scores 0.
func (a *Assessment) ComputeOverallScore() {
	if len(a.Sections) == 0 {
		a.OverallScore = 0
		return
	}
	var sum float64
	for _, s := range a.Sections {
		if s.Failed() {
			continue
		}
		sum += s.ComplianceScore
	}
	a.OverallScore = sum / float64(len(a.Sections)) * 100
}
