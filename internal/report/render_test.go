package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nmehta/dpdpacheck/internal/model"
)

func sampleAssessment() *model.Assessment {
	a := &model.Assessment{
		RunID:     "run-1234",
		CheckedAt: time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC),
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		Sections: []model.SectionReport{
			{
				Section: "Section 4 — Grounds for Processing Personal Data",
				Meaning: "Lawful purpose with consent or legitimate use.",
				Verdicts: []model.ChecklistVerdict{
					{ObligationID: "s4-1", ObligationText: "Lawful purposes only.", Status: model.StatusMatched,
						MatchedSentences: []string{"We process data only for lawful purposes."},
						Justifications:   []string{"explicit"}},
					{ObligationID: "s4-2", ObligationText: "Consent or legitimate use.", Status: model.StatusUnmatched},
				},
				MatchedIDs:       []string{"s4-1"},
				MatchLevel:       model.LevelPartiallyCompliant,
				Severity:         model.SeverityMinor,
				ComplianceScore:  0.75,
				SuggestedRewrite: "Add a policy statement addressing: Consent or legitimate use.",
			},
			{
				Section: "Section 7 — Certain Legitimate Uses",
				Error:   `checklist "Section 7 — Certain Legitimate Uses": empty checklist`,
			},
		},
	}
	a.ComputeOverallScore()
	return a
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := NewRenderer().RenderJSON(sampleAssessment(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got model.Assessment
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if got.RunID != "run-1234" || len(got.Sections) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestRenderCSV_SectionsAndOverall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	if err := NewRenderer().RenderCSV(sampleAssessment(), path); err != nil {
		t.Fatalf("RenderCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV parse failed: %v", err)
	}
	// Header + 2 sections + overall row.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1][2] != "Partially Compliant" || rows[1][4] != "0.75" {
		t.Errorf("section row wrong: %v", rows[1])
	}
	if rows[2][2] != "Error" {
		t.Errorf("failed section row wrong: %v", rows[2])
	}
	if rows[3][0] != "Overall" || !strings.HasSuffix(rows[3][4], "%") {
		t.Errorf("overall row wrong: %v", rows[3])
	}
}

func TestRenderMarkdown_ContainsVerdictsAndRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")

	if err := NewRenderer().RenderMarkdown(sampleAssessment(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(raw)

	for _, want := range []string{
		"# DPDPA Compliance Report",
		"Section 4 — Grounds for Processing Personal Data",
		"We process data only for lawful purposes.",
		"Add a policy statement addressing: Consent or legitimate use.",
		"Analysis failed:",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer().RenderSummary(&buf, sampleAssessment())

	out := buf.String()
	if !strings.Contains(out, "DPDPA compliance:") {
		t.Errorf("summary missing overall score: %q", out)
	}
	if !strings.Contains(out, "(1/2, 0.75)") {
		t.Errorf("summary missing section counts: %q", out)
	}
	if !strings.Contains(out, "error:") {
		t.Errorf("summary missing failed section: %q", out)
	}
}
