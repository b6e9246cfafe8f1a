package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"rulesplit/config"
	"rulesplit/internal/adapter/store"
	"rulesplit/internal/domain"
	"rulesplit/internal/usecase"
)

var (
	showJSON    bool
	showNoColor bool
	statsJSON   bool
)

var showCmd = &cobra.Command{
	Use:   "show <file> [sentence-index]",
	Short: "Print the stored sentences of an indexed file",
	Long: `Print the sentences stored for a file by a previous "rulesplit index" run.
With an index argument only that sentence is printed; an index past the last
sentence is an error.

Examples:
  rulesplit show notes/a.txt
  rulesplit show notes/a.txt 0 --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print sentences as a JSON array")
	showCmd.Flags().BoolVar(&showNoColor, "no-color", false, "disable colored output")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print stats as JSON")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
}

// openCorpus opens the existing corpus store of the root directory.
func openCorpus() (*store.BoltStore, error) {
	dbPath := config.StoreDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no corpus found at %s (run 'rulesplit index' first): %w", dbPath, err)
	}
	return store.NewBoltStore(dbPath)
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := openCorpus()
	if err != nil {
		return err
	}
	defer st.Close()

	showUC := usecase.NewShowUseCase(st)
	cfg := GetConfig()
	printer := newSentencePrinter(cmd.OutOrStdout(), showJSON || cfg.Output.Format == "json", true, cfg.Output.Color && !showNoColor)

	if len(args) == 2 {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid sentence index %q: %w", args[1], err)
		}
		s, err := showUC.Sentence(args[0], i)
		if err != nil {
			return err
		}
		return printer.Print(domain.Sentences{s}, i)
	}

	doc, err := showUC.Document(args[0])
	if err != nil {
		return err
	}
	return printer.Print(doc.Sentences, 0)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openCorpus()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := usecase.NewShowUseCase(st).Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		return json.NewEncoder(out).Encode(stats)
	}
	fmt.Fprintf(out, "Documents:            %d\n", stats.TotalDocs)
	fmt.Fprintf(out, "Sentences:            %d\n", stats.TotalSentences)
	fmt.Fprintf(out, "Tokens:               %d\n", stats.TotalTokens)
	fmt.Fprintf(out, "Avg sentence length:  %.2f\n", stats.AvgSentenceLen)
	return nil
}
