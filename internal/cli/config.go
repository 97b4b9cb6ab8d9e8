package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nmehta/dpdpacheck/internal/model"
)

// effectiveConfig layers viper-resolved values (env over config file, per
// viper's own precedence) on top of the built-in defaults. Flag overrides
// are applied afterwards by the command that owns the flags.
func effectiveConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("oracle.provider") {
		cfg.Oracle.Provider = viper.GetString("oracle.provider")
	}
	if viper.IsSet("oracle.model") {
		cfg.Oracle.Model = viper.GetString("oracle.model")
	}
	if viper.IsSet("oracle.base_url") {
		cfg.Oracle.BaseURL = viper.GetString("oracle.base_url")
	}
	if viper.IsSet("oracle.timeout") {
		cfg.Oracle.Timeout = viper.GetDuration("oracle.timeout")
	}
	if viper.IsSet("oracle.max_retries") {
		cfg.Oracle.MaxRetries = viper.GetInt("oracle.max_retries")
	}
	if viper.IsSet("oracle.requests_per_second") {
		cfg.Oracle.RequestsPerSecond = viper.GetFloat64("oracle.requests_per_second")
	}
	if viper.IsSet("oracle.burst") {
		cfg.Oracle.Burst = viper.GetInt("oracle.burst")
	}
	if viper.IsSet("concurrency.section_workers") {
		cfg.Concurrency.SectionWorkers = viper.GetInt("concurrency.section_workers")
	}
	if viper.IsSet("concurrency.sentence_workers") {
		cfg.Concurrency.SentenceWorkers = viper.GetInt("concurrency.sentence_workers")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("output.verbose") {
		cfg.Output.Verbose = viper.GetBool("output.verbose")
	}

	return cfg
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dpdpacheck configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show prints the configuration a check would run with: built-in
defaults overlaid with the config file and DPDPACHECK_* environment
variables. Per-invocation flag overrides are not included.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := effectiveConfig()
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ~/.dpdpacheck/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dpdpacheck")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}

		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		out, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
