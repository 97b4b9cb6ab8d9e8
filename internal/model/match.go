package model

// MatchClaim is an unvalidated assertion from the oracle that a policy
// sentence satisfies an obligation. Claims go straight to the evidence
// validator and are either promoted to ValidatedMatch or discarded.
type MatchClaim struct {
	ObligationID  string `json:"obligation_id"`
	SentenceText  string `json:"sentence"`
	Justification string `json:"justification"`
}

// ValidatedMatch is a MatchClaim whose sentence text was confirmed to be a
// literal substring of the original policy text.
type ValidatedMatch struct {
	ObligationID  string `json:"obligation_id"`
	SentenceText  string `json:"sentence"`
	Justification string `json:"justification"`
}

// VerdictStatus is the per-item outcome of an analysis run.
type VerdictStatus string

const (
	StatusMatched   VerdictStatus = "matched"
	StatusUnmatched VerdictStatus = "unmatched"
)

// EvidenceNotFoundJustification is recorded when the only support an item
// received was a claim citing text absent from the policy.
const EvidenceNotFoundJustification = "evidence not found in source text"

// ChecklistVerdict is the outcome for one ObligationItem in one run.
// Status is matched iff at least one ValidatedMatch references the item.
// All matching sentences are retained, not reduced to one.
type ChecklistVerdict struct {
	ObligationID     string        `json:"obligation_id"`
	ObligationText   string        `json:"obligation_text"`
	Status           VerdictStatus `json:"status"`
	MatchedSentences []string      `json:"matched_sentences,omitempty"`
	Justifications   []string      `json:"justifications,omitempty"`
}

// Matched reports whether the verdict is a match.
func (v ChecklistVerdict) Matched() bool {
	return v.Status == StatusMatched
}
