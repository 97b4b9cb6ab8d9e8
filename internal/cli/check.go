package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmehta/dpdpacheck/internal/cache"
	"github.com/nmehta/dpdpacheck/internal/checklist"
	"github.com/nmehta/dpdpacheck/internal/ingest"
	"github.com/nmehta/dpdpacheck/internal/model"
	"github.com/nmehta/dpdpacheck/internal/oracle"
	"github.com/nmehta/dpdpacheck/internal/pipeline"
	"github.com/nmehta/dpdpacheck/internal/report"
)

var (
	outJSON      string
	outMD        string
	outCSV       string
	provider     string
	oracleModel  string
	callTimeout  time.Duration
	noCache      bool
	cacheDir     string
	onlySections []string
	sectionConc  int
	sentenceConc int
	rps          float64
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <policy-file>",
	Short: "Check a privacy policy against the DPDPA checklists",
	Long: `Check analyzes a policy document (plain text or HTML; use "-" for stdin):
- Segment the policy into sentences
- Ask the oracle which obligations each sentence explicitly states
- Verify cited evidence verbatim against the source text
- Classify each section and suggest rewrites for missing obligations

Example:
  dpdpacheck check policy.txt
  dpdpacheck check policy.html --json report.json --md report.md --csv report.csv
  dpdpacheck check policy.txt --provider anthropic --model claude-3-5-haiku-latest
  cat policy.txt | dpdpacheck check - --section "Section 6 — Consent"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path (optional)")

	// Oracle flags
	checkCmd.Flags().StringVar(&provider, "provider", "openai", "oracle provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&oracleModel, "model", "", "oracle model name (provider default if empty)")
	checkCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "timeout per oracle call")
	checkCmd.Flags().Float64Var(&rps, "rps", 2, "oracle requests per second")

	// Cache flags
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response cache")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: $HOME/.dpdpacheck/cache)")

	// Scope and concurrency
	checkCmd.Flags().StringArrayVar(&onlySections, "section", nil, "limit analysis to named sections (repeatable)")
	checkCmd.Flags().IntVar(&sectionConc, "section-workers", 2, "sections analyzed in parallel")
	checkCmd.Flags().IntVar(&sentenceConc, "sentence-workers", 4, "concurrent oracle calls per section")
}

func runCheck(cmd *cobra.Command, args []string) error {
	policyText, err := loadPolicy(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig(cmd)

	reg, err := checklist.Load()
	if err != nil {
		return fmt.Errorf("load checklists: %w", err)
	}
	checklists, err := reg.Filter(onlySections)
	if err != nil {
		return err
	}

	adapter, err := buildAdapter(cfg)
	if err != nil {
		return err
	}

	checker := pipeline.NewChecker(adapter, cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d sections with %s\n", len(checklists), adapter.Name())
	}

	assessment, err := checker.Run(cmd.Context(), policyText, checklists)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoPolicyText) {
			return fmt.Errorf("policy text is empty: nothing to analyze")
		}
		return fmt.Errorf("check failed: %w", err)
	}

	return renderOutputs(assessment)
}

func loadPolicy(arg string) (string, error) {
	if arg == "-" {
		return ingest.ReadAll(os.Stdin)
	}
	return ingest.ReadFile(arg)
}

// buildConfig resolves the effective configuration: flags beat DPDPACHECK_*
// environment variables, which beat the config file, which beats defaults.
// Only flags the user actually set override the lower layers.
func buildConfig(cmd *cobra.Command) *model.Config {
	cfg := effectiveConfig()

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Oracle.Provider = provider
	}
	if flags.Changed("model") {
		cfg.Oracle.Model = oracleModel
	}
	if flags.Changed("timeout") {
		cfg.Oracle.Timeout = callTimeout
	}
	if flags.Changed("rps") {
		cfg.Oracle.RequestsPerSecond = rps
	}
	if flags.Changed("section-workers") {
		cfg.Concurrency.SectionWorkers = sectionConc
	}
	if flags.Changed("sentence-workers") {
		cfg.Concurrency.SentenceWorkers = sentenceConc
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	switch cfg.Oracle.Provider {
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Oracle.BaseURL = baseURL
		}
	}
	return cfg
}

func buildAdapter(cfg *model.Config) (*oracle.Adapter, error) {
	prov, err := oracle.NewProvider(oracle.ConfigFromModel(cfg.Oracle))
	if err != nil {
		return nil, err
	}

	opts := []oracle.AdapterOption{
		oracle.WithRateLimit(cfg.Oracle.RequestsPerSecond, cfg.Oracle.Burst),
	}
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(home, ".dpdpacheck", "cache")
		}
		store := cache.NewLayeredCache(30*time.Minute, dir, cfg.Cache.TTL)
		opts = append(opts, oracle.WithCache(store, cfg.Cache.TTL))
	}

	return oracle.NewAdapter(prov, oracle.ConfigFromModel(cfg.Oracle), opts...), nil
}

func renderOutputs(assessment *model.Assessment) error {
	renderer := report.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(assessment, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(assessment, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}
	if outCSV != "" {
		if err := renderer.RenderCSV(assessment, outCSV); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote CSV: %s\n", outCSV)
		}
	}

	renderer.RenderSummary(os.Stdout, assessment)
	return nil
}
