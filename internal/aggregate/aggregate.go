// Package aggregate folds per-sentence oracle matches into per-item verdicts
// and derives the section-level classification. Everything here is a pure
// function of its inputs; the external oracle never reaches past this line.
package aggregate

import (
	"github.com/nmehta/dpdpacheck/internal/model"
)

// Aggregate produces one verdict per checklist item, in checklist order.
// An item is matched iff at least one validated match references it; all
// matching sentences and justifications are retained. Unmatched items whose
// only support was discarded by the evidence validator carry the fixed
// evidence-not-found justification.
func Aggregate(items []model.ObligationItem, validated []model.ValidatedMatch, discarded []model.MatchClaim) []model.ChecklistVerdict {
	byID := make(map[string][]model.ValidatedMatch, len(items))
	for _, m := range validated {
		byID[m.ObligationID] = append(byID[m.ObligationID], m)
	}
	discardedIDs := make(map[string]bool, len(discarded))
	for _, c := range discarded {
		discardedIDs[c.ObligationID] = true
	}

	verdicts := make([]model.ChecklistVerdict, 0, len(items))
	for _, it := range items {
		v := model.ChecklistVerdict{
			ObligationID:   it.ID,
			ObligationText: it.Text,
			Status:         model.StatusUnmatched,
		}

		if matches := byID[it.ID]; len(matches) > 0 {
			v.Status = model.StatusMatched
			for _, m := range matches {
				v.MatchedSentences = append(v.MatchedSentences, m.SentenceText)
				v.Justifications = append(v.Justifications, m.Justification)
			}
		} else if discardedIDs[it.ID] {
			v.Justifications = []string{model.EvidenceNotFoundJustification}
		}

		verdicts = append(verdicts, v)
	}
	return verdicts
}

// MatchedCount counts matched verdicts.
func MatchedCount(verdicts []model.ChecklistVerdict) int {
	n := 0
	for _, v := range verdicts {
		if v.Matched() {
			n++
		}
	}
	return n
}

// MatchedIDs returns the obligation IDs of matched verdicts, in checklist order.
func MatchedIDs(verdicts []model.ChecklistVerdict) []string {
	var ids []string
	for _, v := range verdicts {
		if v.Matched() {
			ids = append(ids, v.ObligationID)
		}
	}
	return ids
}

// Classify derives the section classification from the verdict list.
//
// The table is a fixed business rule. Severity keys off the number of
// MISSING items: 1 missing is Minor, 2-3 Medium, 4+ Major. An empty verdict
// list (no valid checklist) classifies as Non-Compliant.
func Classify(verdicts []model.ChecklistVerdict) (model.MatchLevel, model.Severity, float64) {
	total := len(verdicts)
	matched := MatchedCount(verdicts)
	missing := total - matched

	switch {
	case total == 0:
		return model.LevelNonCompliant, model.SeverityMajor, 0.0
	case matched == total:
		return model.LevelFullyCompliant, model.SeverityNone, 1.0
	case matched == 0:
		return model.LevelNonCompliant, model.SeverityMajor, 0.0
	case missing == 1:
		return model.LevelPartiallyCompliant, model.SeverityMinor, 0.75
	case missing <= 3:
		return model.LevelPartiallyCompliant, model.SeverityMedium, 0.5
	default:
		return model.LevelPartiallyCompliant, model.SeverityMajor, 0.25
	}
}
