// Package pipeline orchestrates a full compliance run: segment the policy
// once, fan the sentence x section matrix out to the oracle, validate the
// evidence, aggregate verdicts, and classify each section.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nmehta/dpdpacheck/internal/aggregate"
	"github.com/nmehta/dpdpacheck/internal/checklist"
	"github.com/nmehta/dpdpacheck/internal/model"
	"github.com/nmehta/dpdpacheck/internal/segment"
	"github.com/nmehta/dpdpacheck/internal/validate"
	"github.com/nmehta/dpdpacheck/internal/worker"
)

// ErrNoPolicyText is returned before any oracle call when the input is
// empty. There is no partial report in this case.
var ErrNoPolicyText = errors.New("no policy text supplied")

// Matcher is the oracle surface the pipeline depends on. The production
// implementation is *oracle.Adapter; tests inject fakes.
type Matcher interface {
	Name() string
	MatchSentence(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error)
}

// Checker runs compliance analyses against a fixed oracle and configuration.
type Checker struct {
	segmenter *segment.Segmenter
	matcher   Matcher
	llmModel  string
	sections  int // concurrent sections
	sentences int // concurrent oracle calls within a section
	verbose   bool
}

// NewChecker wires a checker from configuration. The matcher is passed in
// explicitly; no singleton client state is shared.
func NewChecker(matcher Matcher, cfg *model.Config) *Checker {
	sections := cfg.Concurrency.SectionWorkers
	if sections <= 0 {
		sections = 1
	}
	sentences := cfg.Concurrency.SentenceWorkers
	if sentences <= 0 {
		sentences = 1
	}

	return &Checker{
		segmenter: segment.New(),
		matcher:   matcher,
		llmModel:  cfg.Oracle.Model,
		sections:  sections,
		sentences: sentences,
		verbose:   cfg.Output.Verbose,
	}
}

// Run analyzes the policy against every checklist and returns the
// cross-section assessment. One section failing does not block the others;
// cancelling ctx stops the run between oracle calls while leaving completed
// sections usable in the returned assessment.
func (c *Checker) Run(ctx context.Context, policyText string, checklists []model.Checklist) (*model.Assessment, error) {
	if strings.TrimSpace(policyText) == "" {
		return nil, ErrNoPolicyText
	}

	// Segment once; every section reads the same immutable sentence list.
	sentences := c.segmenter.Segment(policyText)
	if c.verbose {
		fmt.Fprintf(os.Stderr, "segmented policy into %d sentences\n", len(sentences))
	}

	pool := worker.NewPool(ctx, c.sections)
	pool.Start()
	for i, cl := range checklists {
		pool.Submit(&sectionJob{
			index:      i,
			checker:    c,
			checklist:  cl,
			sentences:  sentences,
			policyText: policyText,
		})
	}
	results := pool.Wait()

	reports := make([]model.SectionReport, 0, len(results))
	indices := make([]int, 0, len(results))
	byIndex := make(map[int]model.SectionReport, len(results))
	for _, r := range results {
		sr := r.(*sectionResult)
		byIndex[sr.index] = sr.report
		indices = append(indices, sr.index)
	}
	sort.Ints(indices)
	for _, i := range indices {
		reports = append(reports, byIndex[i])
	}

	assessment := &model.Assessment{
		RunID:     uuid.NewString(),
		CheckedAt: time.Now().UTC(),
		Provider:  c.matcher.Name(),
		Model:     c.llmModel,
		Sections:  reports,
	}
	assessment.ComputeOverallScore()
	return assessment, nil
}

// sectionJob analyzes one section on the worker pool.
type sectionJob struct {
	index      int
	checker    *Checker
	checklist  model.Checklist
	sentences  []string
	policyText string
}

type sectionResult struct {
	index  int
	report model.SectionReport
}

func (r *sectionResult) Err() error {
	if r.report.Failed() {
		return errors.New(r.report.Error)
	}
	return nil
}

func (j *sectionJob) Execute(ctx context.Context) worker.Result {
	report := j.checker.BuildReport(ctx, j.checklist, j.sentences, j.policyText)
	return &sectionResult{index: j.index, report: report}
}

// BuildReport runs the matching engine for one section: oracle calls per
// sentence, evidence validation, aggregation, classification, remediation.
// Oracle failures contribute zero claims and never abort the section.
func (c *Checker) BuildReport(ctx context.Context, cl model.Checklist, sentences []string, policyText string) model.SectionReport {
	report := model.SectionReport{
		Section: cl.Section,
		Meaning: cl.Meaning,
	}

	if err := checklist.Validate(cl); err != nil {
		report.Error = err.Error()
		report.MatchLevel = model.LevelNonCompliant
		report.Severity = model.SeverityMajor
		report.ComplianceScore = 0
		return report
	}

	claims := c.matchSentences(ctx, cl, sentences)
	res := validate.Filter(claims, policyText)

	verdicts := aggregate.Aggregate(cl.Items, res.Validated, res.Discarded)
	level, severity, score := aggregate.Classify(verdicts)

	report.Verdicts = verdicts
	report.MatchedIDs = aggregate.MatchedIDs(verdicts)
	report.MatchLevel = level
	report.Severity = severity
	report.ComplianceScore = score
	report.SuggestedRewrite = aggregate.SuggestRewrite(verdicts)
	return report
}

// matchSentences runs the oracle over every sentence with bounded
// concurrency. Results are flattened in sentence order so downstream output
// is deterministic for fixed oracle responses.
func (c *Checker) matchSentences(ctx context.Context, cl model.Checklist, sentences []string) []model.MatchClaim {
	perSentence := make([][]model.MatchClaim, len(sentences))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.sentences)

	for i, sentence := range sentences {
		wg.Add(1)
		go func(idx int, s string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			claims, err := c.matcher.MatchSentence(ctx, s, cl)
			if err != nil {
				// Zero claims for this pair; the run continues.
				if c.verbose {
					fmt.Fprintf(os.Stderr, "oracle call failed (%s, sentence %d): %v\n", cl.Section, idx, err)
				}
				return
			}
			perSentence[idx] = claims
		}(i, sentence)
	}
	wg.Wait()

	var flat []model.MatchClaim
	for _, claims := range perSentence {
		flat = append(flat, claims...)
	}
	return flat
}
