package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"rulesplit/config"
	"rulesplit/internal/adapter/fs"
	"rulesplit/internal/adapter/memstore"
	"rulesplit/internal/adapter/store"
	"rulesplit/internal/port"
	"rulesplit/internal/usecase"
)

var (
	indexQuiet  bool
	indexDryRun bool
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Tokenize the text files of a directory into the corpus store",
	Long: `Tokenize every matching text file in the specified directory and store the
sentences in .rulesplit/corpus.db within the target directory. Unchanged files
are skipped; changing the tokenizer rules or input encoding rebuilds the corpus.

Examples:
  rulesplit index .                 # Index current directory
  rulesplit index /path/to/corpus   # Index specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexQuiet, "quiet", "q", false, "hide the progress bar")
	indexCmd.Flags().BoolVar(&indexDryRun, "dry-run", false, "tokenize and report without writing the corpus")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	out := cmd.OutOrStdout()

	var st port.DocumentStore
	dbPath := config.StoreDBPath(path)
	if indexDryRun {
		st = memstore.NewMemoryStore()
	} else {
		bolt, err := openIndexStore(cmd, path, cfg)
		if err != nil {
			return err
		}
		st = bolt
	}
	defer st.Close()

	reader, err := fs.NewReader(cfg.Index.Encoding)
	if err != nil {
		return err
	}
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, reader, newTokenizer(cfg), cfg.Index.Workers, logger)

	fmt.Fprintf(out, "Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	progressCallback := func(processed, total int, currentFile string) {
		if indexQuiet {
			return
		}
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Tokenizing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Tokenizing[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	result, err := indexUC.Index(cmd.Context(), path, progressCallback)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(out, "\nIndexing complete:\n")
	fmt.Fprintf(out, "  Files indexed:     %d\n", result.FilesIndexed)
	fmt.Fprintf(out, "  Files skipped:     %d (unchanged)\n", result.FilesSkipped)
	fmt.Fprintf(out, "  Files deleted:     %d (removed)\n", result.FilesDeleted)
	fmt.Fprintf(out, "  Sentences created: %d\n", result.SentencesCreated)
	fmt.Fprintf(out, "  Tokens created:    %d\n", result.TokensCreated)

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}

	if indexDryRun {
		fmt.Fprintf(out, "\nDry run: nothing was written\n")
		return nil
	}
	fmt.Fprintf(out, "\nCorpus stored at: %s\n", dbPath)
	return nil
}

// openIndexStore opens the corpus store under path, migrating or clearing it
// as the schema and configuration require.
func openIndexStore(cmd *cobra.Command, path string, cfg *config.Config) (*store.BoltStore, error) {
	if err := config.EnsureDataDir(path); err != nil {
		return nil, fmt.Errorf("failed to create .rulesplit directory: %w", err)
	}

	st, err := store.NewBoltStore(config.StoreDBPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store: %w", err)
	}

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if migrationResult.NeedsRebuild {
		fmt.Fprintf(cmd.OutOrStdout(), "Corpus rebuild required: %s\n", migrationResult.Reason)
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to clear corpus: %w", err)
		}
	}
	if migrationResult.NeedsMigration || migrationResult.NeedsRebuild {
		logger.Info("migrating schema", "from", migrationResult.OldVersion, "to", migrationResult.NewVersion)
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return st, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
