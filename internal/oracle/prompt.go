package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nmehta/dpdpacheck/internal/model"
)

const systemPrompt = `You are a DPDPA compliance reviewer. You judge whether a single sentence
from an organization's privacy policy explicitly states a legal obligation.

Strict matching rules:
- A checklist item counts as matched ONLY if the sentence explicitly and
  unambiguously states the obligation in legal terms, with correct context.
- Vague, generic, or partial references are NOT matches.
- Descriptions of UI or product behavior are NOT legal commitments.
- Do not infer implied meaning. Do not match on paraphrase alone.
- Not matching anything is the expected outcome for most sentences.

Output rules:
- Return JSON only: no prose, no markdown fences, no explanation.
- The JSON must have exactly one top-level key "Matched Items" holding a list
  (empty if nothing matches).
- Each entry must have "Checklist ID" (the item's id), "Justification" (one
  sentence explaining why the match is explicit), and "Sentence" (the exact
  policy sentence, quoted verbatim from the input).`

// BuildPrompt constructs the user prompt for one (sentence, section) pair.
func BuildPrompt(sentence string, cl model.Checklist) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DPDPA SECTION UNDER REVIEW:\n%s\n\n", cl.Section)
	fmt.Fprintf(&b, "SECTION MEANING:\n%s\n\n", cl.Meaning)

	b.WriteString("CHECKLIST OF OBLIGATIONS:\n")
	for _, it := range cl.Items {
		fmt.Fprintf(&b, "- [%s] %s\n", it.ID, it.Text)
	}

	fmt.Fprintf(&b, "\nPOLICY SENTENCE:\n%q\n\n", sentence)

	b.WriteString(`Which checklist obligations does this sentence explicitly state?
Respond with JSON of the form:
{"Matched Items": [{"Checklist ID": "...", "Justification": "...", "Sentence": "..."}]}`)

	return b.String()
}

// matchedItemsEnvelope is the strict response schema. "Checklist Item" is
// accepted as an alias key carrying the obligation text instead of its ID.
type matchedItemsEnvelope struct {
	MatchedItems []matchedItem `json:"Matched Items"`
}

type matchedItem struct {
	ChecklistID   string `json:"Checklist ID"`
	ChecklistItem string `json:"Checklist Item"`
	Justification string `json:"Justification"`
	Sentence      string `json:"Sentence"`
}

// ParseResponse turns a raw oracle reply into match claims for the given
// sentence. Any shape other than the matched-items envelope is a format
// error for this call. Entries naming an obligation that is not on the
// checklist are dropped; the evidence validator guards the cited sentence.
func ParseResponse(raw, sentence string, cl model.Checklist) ([]model.MatchClaim, error) {
	cleaned := stripFences(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, &CallError{Kind: ErrFormat, Err: fmt.Errorf("empty response")}
	}

	var envelope matchedItemsEnvelope
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&envelope); err != nil {
		return nil, &CallError{Kind: ErrFormat, Err: fmt.Errorf("decode response: %w", err)}
	}

	var claims []model.MatchClaim
	for _, item := range envelope.MatchedItems {
		id := resolveObligationID(item, cl)
		if id == "" {
			continue
		}

		cited := item.Sentence
		if cited == "" {
			cited = sentence
		}

		claims = append(claims, model.MatchClaim{
			ObligationID:  id,
			SentenceText:  cited,
			Justification: item.Justification,
		})
	}
	return claims, nil
}

// resolveObligationID maps a response entry to a checklist item ID, via
// "Checklist ID" or the "Checklist Item" text alias. Returns "" if the entry
// names nothing on the checklist.
func resolveObligationID(item matchedItem, cl model.Checklist) string {
	if item.ChecklistID != "" {
		if _, ok := cl.Item(item.ChecklistID); ok {
			return item.ChecklistID
		}
		return ""
	}
	if item.ChecklistItem != "" {
		want := strings.TrimSpace(item.ChecklistItem)
		for _, it := range cl.Items {
			if strings.EqualFold(it.Text, want) {
				return it.ID
			}
		}
	}
	return ""
}

// stripFences removes a markdown code fence if the oracle wrapped its JSON
// in one despite instructions.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
