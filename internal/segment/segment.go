// Package segment splits raw policy text into candidate sentences.
package segment

import (
	"strings"
	"unicode"
)

// minWords is the smallest fragment worth sending to the oracle. Shorter
// fragments are structurally unlikely to carry a verifiable legal commitment.
const minWords = 5

// Segmenter splits policy text into an ordered sequence of trimmed sentences.
// The original surface form of each sentence is preserved byte for byte so
// that validated evidence can be checked against the source text verbatim.
type Segmenter struct {
	minWords int
}

// New creates a segmenter with the default word-count threshold.
func New() *Segmenter {
	return &Segmenter{minWords: minWords}
}

// Segment splits text into sentences: paragraph boundaries first, then
// sentence-final punctuation followed by whitespace. Paragraphs without a run
// of 3+ alphanumeric characters are skipped entirely, which keeps bullet
// symbols and decorative headers from becoming spurious sentences.
func (s *Segmenter) Segment(text string) []string {
	var sentences []string

	for _, para := range splitParagraphs(text) {
		if !hasAlnumRun(para, 3) {
			continue
		}
		for _, frag := range splitSentences(para) {
			frag = strings.TrimSpace(frag)
			if wordCount(frag) < s.minWords {
				continue
			}
			sentences = append(sentences, frag)
		}
	}

	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// splitSentences splits on . ! ? followed by whitespace. The terminator stays
// attached to its sentence.
func splitSentences(para string) []string {
	var out []string
	var current strings.Builder

	runes := []rune(para)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				out = append(out, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// hasAlnumRun reports whether s contains a run of at least n consecutive
// alphanumeric characters.
func hasAlnumRun(s string, n int) bool {
	run := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
