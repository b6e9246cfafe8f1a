package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"rulesplit/internal/adapter/fs"
	"rulesplit/internal/domain"
)

var (
	tokenizeFile     string
	tokenizeJSON     bool
	tokenizeNumber   bool
	tokenizeNoColor  bool
	tokenizeLines    bool
	tokenizeSentence int
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text...]",
	Short: "Tokenize text into sentences",
	Long: `Tokenize text given as arguments, read from a file, or read from stdin,
and print one sentence per line with tokens separated by spaces.

Examples:
  rulesplit tokenize "I can't go. Dr. Smith can."
  rulesplit tokenize -f chapter1.txt -n
  cat notes.txt | rulesplit tokenize --json
  rulesplit tokenize -f corpus.txt --lines       # each line is its own text`,
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringVarP(&tokenizeFile, "file", "f", "", "read text from file ('-' for stdin)")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "print sentences as a JSON array")
	tokenizeCmd.Flags().BoolVarP(&tokenizeNumber, "number", "n", false, "prefix each sentence with its index")
	tokenizeCmd.Flags().BoolVar(&tokenizeNoColor, "no-color", false, "disable colored output")
	tokenizeCmd.Flags().BoolVar(&tokenizeLines, "lines", false, "tokenize each input line separately")
	tokenizeCmd.Flags().IntVarP(&tokenizeSentence, "sentence", "s", -1, "print only the sentence at this index")
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	reader, err := fs.NewReader(cfg.Index.Encoding)
	if err != nil {
		return err
	}

	var src io.Reader
	switch {
	case tokenizeFile == "-" || (tokenizeFile == "" && len(args) == 0):
		src = cmd.InOrStdin()
	case tokenizeFile != "":
		f, err := os.Open(tokenizeFile)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		src = f
	default:
		src = strings.NewReader(strings.Join(args, " "))
	}

	tokenizer := newTokenizer(cfg)

	var sentences domain.Sentences
	if tokenizeLines {
		scanner := bufio.NewScanner(src)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line, err := reader.Decode(scanner.Bytes())
			if err != nil {
				return err
			}
			sentences = append(sentences, tokenizer.Tokenize(line)...)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	} else {
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text, err := reader.Decode(data)
		if err != nil {
			return err
		}
		sentences = tokenizer.Tokenize(text)
	}

	hits, misses := tokenizer.Stats()
	logger.Debug("tokenized input", "sentences", sentences.Len(), "tokens", sentences.TokenCount(),
		"cache_hits", hits, "cache_misses", misses)

	asJSON := tokenizeJSON || cfg.Output.Format == "json"
	printer := newSentencePrinter(cmd.OutOrStdout(), asJSON, tokenizeNumber, cfg.Output.Color && !tokenizeNoColor)

	if tokenizeSentence >= 0 {
		s, err := sentences.Sentence(tokenizeSentence)
		if err != nil {
			return err
		}
		return printer.Print(domain.Sentences{s}, tokenizeSentence)
	}
	return printer.Print(sentences, 0)
}
