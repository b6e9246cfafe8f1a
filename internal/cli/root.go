package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"rulesplit/config"
	"rulesplit/internal/adapter/analyzer"
	"rulesplit/internal/adapter/cache"
	"rulesplit/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rulesplit",
	Short: "Rule-based English tokenizer - split text into sentences of tokens",
	Long: `rulesplit tokenizes English text with a fixed set of rules: punctuation is
split from words, common contractions and abbreviations are expanded, and the
token stream is grouped into sentences with special care for quoted dialogue.

Example usage:
  rulesplit tokenize "Dr. Smith can't go."   # Tokenize text
  rulesplit tokenize -f book.txt --json       # Tokenize a file as JSON
  rulesplit index .                           # Tokenize a directory into .rulesplit/
  rulesplit show notes.txt 3                  # Print a stored sentence`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = logging.New(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./rulesplit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// newTokenizer builds the configured tokenizer behind a result cache.
func newTokenizer(cfg *config.Config) *cache.CachedTokenizer {
	return cache.NewCachedTokenizer(analyzer.New(cfg.Rules()), cfg.Cache.Size)
}
