// Package report renders an assessment to JSON, Markdown, and CSV, and
// prints the terminal summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// Renderer writes assessment outputs.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full assessment as indented JSON.
func (r *Renderer) RenderJSON(a *model.Assessment, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderCSV writes the cross-section table: one row per section plus the
// overall score. This is the spreadsheet-style export.
func (r *Renderer) RenderCSV(a *model.Assessment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV report: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Section", "Meaning", "Match Level", "Severity", "Score"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, s := range a.Sections {
		row := []string{
			s.Section,
			s.Meaning,
			string(s.MatchLevel),
			string(s.Severity),
			strconv.FormatFloat(s.ComplianceScore, 'f', 2, 64),
		}
		if s.Failed() {
			row[2] = "Error"
			row[3] = s.Error
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	if err := w.Write([]string{"Overall", "", "", "", strconv.FormatFloat(a.OverallScore, 'f', 2, 64) + "%"}); err != nil {
		return fmt.Errorf("write CSV footer: %w", err)
	}
	w.Flush()
	return w.Error()
}

// RenderMarkdown writes the human-readable report with per-item verdicts
// and suggested rewrites.
func (r *Renderer) RenderMarkdown(a *model.Assessment, path string) error {
	var b strings.Builder

	b.WriteString("# DPDPA Compliance Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", a.RunID)
	fmt.Fprintf(&b, "- Checked: %s\n", a.CheckedAt.Format("2006-01-02 15:04 UTC"))
	if a.Provider != "" {
		fmt.Fprintf(&b, "- Oracle: %s %s\n", a.Provider, a.Model)
	}
	fmt.Fprintf(&b, "- Overall compliance: %.2f%%\n\n", a.OverallScore)

	b.WriteString("| Section | Match Level | Severity | Score |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, s := range a.Sections {
		if s.Failed() {
			fmt.Fprintf(&b, "| %s | Error | — | 0.00 |\n", s.Section)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f |\n", s.Section, s.MatchLevel, s.Severity, s.ComplianceScore)
	}
	b.WriteString("\n")

	for _, s := range a.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Section)
		if s.Failed() {
			fmt.Fprintf(&b, "Analysis failed: %s\n\n", s.Error)
			continue
		}
		fmt.Fprintf(&b, "%s\n\n", s.Meaning)

		for _, v := range s.Verdicts {
			mark := "✗"
			if v.Matched() {
				mark = "✓"
			}
			fmt.Fprintf(&b, "- %s **[%s]** %s\n", mark, v.ObligationID, v.ObligationText)
			for i, sentence := range v.MatchedSentences {
				fmt.Fprintf(&b, "  - “%s”", sentence)
				if i < len(v.Justifications) && v.Justifications[i] != "" {
					fmt.Fprintf(&b, " — %s", v.Justifications[i])
				}
				b.WriteString("\n")
			}
			if !v.Matched() {
				for _, j := range v.Justifications {
					fmt.Fprintf(&b, "  - %s\n", j)
				}
			}
		}

		b.WriteString("\n### Suggested rewrite\n\n")
		for _, line := range strings.Split(s.SuggestedRewrite, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints the per-section table and overall score to w.
func (r *Renderer) RenderSummary(w io.Writer, a *model.Assessment) {
	fmt.Fprintf(w, "\nDPDPA compliance: %.2f%%\n\n", a.OverallScore)
	for _, s := range a.Sections {
		if s.Failed() {
			fmt.Fprintf(w, "  %-70s error: %s\n", s.Section, s.Error)
			continue
		}
		matched := len(s.MatchedIDs)
		total := len(s.Verdicts)
		fmt.Fprintf(w, "  %-70s %s (%d/%d, %.2f)\n", s.Section, s.MatchLevel, matched, total, s.ComplianceScore)
	}
	fmt.Fprintln(w)
}
