// Package validate guards against oracle fabrication. A match claim is only
// as good as its cited evidence, and the one check available without
// re-invoking the oracle is cheap and deterministic: the cited sentence must
// appear verbatim in the original policy text.
package validate

import (
	"strings"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// Result separates promoted matches from discarded claims. Discarded claims
// are kept only so the aggregator can attach the evidence-not-found
// justification to items that had no other support.
type Result struct {
	Validated []model.ValidatedMatch
	Discarded []model.MatchClaim
}

// Filter checks every claim's cited sentence against the policy text.
// Claims citing text that is not a literal substring of the policy are
// discarded entirely: not downgraded, not retried.
func Filter(claims []model.MatchClaim, policyText string) Result {
	var res Result
	for _, claim := range claims {
		cited := strings.TrimSpace(claim.SentenceText)
		if !Verbatim(cited, policyText) {
			res.Discarded = append(res.Discarded, claim)
			continue
		}
		// Promote the trimmed citation so the match itself satisfies the
		// substring guarantee, not just the check.
		res.Validated = append(res.Validated, model.ValidatedMatch{
			ObligationID:  claim.ObligationID,
			SentenceText:  cited,
			Justification: claim.Justification,
		})
	}
	return res
}

// Verbatim reports whether the cited sentence appears byte for byte in the
// policy text. Leading and trailing whitespace on the citation is ignored,
// matching how the segmenter trims sentences.
func Verbatim(cited, policyText string) bool {
	cited = strings.TrimSpace(cited)
	if cited == "" {
		return false
	}
	return strings.Contains(policyText, cited)
}
