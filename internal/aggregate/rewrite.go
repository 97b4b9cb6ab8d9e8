package aggregate

import (
	"fmt"
	"strings"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// FullyCoveredMessage is emitted when a section has no unmatched items.
const FullyCoveredMessage = "All checklist obligations for this section are covered by the policy."

// rewriteTemplate embeds the obligation text verbatim.
const rewriteTemplate = "Add a policy statement addressing: %s"

// SuggestRewrite emits one corrective line per unmatched item, in checklist
// order. Pure function of the verdict list: no oracle calls, no randomness.
func SuggestRewrite(verdicts []model.ChecklistVerdict) string {
	var lines []string
	for _, v := range verdicts {
		if v.Matched() {
			continue
		}
		lines = append(lines, fmt.Sprintf(rewriteTemplate, v.ObligationText))
	}

	if len(lines) == 0 {
		return FullyCoveredMessage
	}
	return strings.Join(lines, "\n")
}
