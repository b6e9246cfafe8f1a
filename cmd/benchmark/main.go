package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"rulesplit/config"
	"rulesplit/internal/adapter/analyzer"
	"rulesplit/internal/adapter/cache"
	"rulesplit/internal/adapter/fs"
)

func main() {
	input := flag.String("f", "", "Text file to tokenize")
	dir := flag.String("dir", ".", "Directory to load rulesplit.yaml from")
	rounds := flag.Int("n", 20, "Number of rounds")
	flag.Parse()

	if *input == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -f book.txt [-n 20] [-dir .]")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Raw tokenizer throughput (MB/s, sentences/s)")
		fmt.Println("  2. Cached tokenizer throughput on repeated input")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	reader, err := fs.NewReader(cfg.Index.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	text, err := reader.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	tok := analyzer.New(cfg.Rules())

	fmt.Println("TOKENIZER BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Input: %s (%d bytes, %s)\n", *input, len(text), reader.Encoding())
	fmt.Printf("Rules: %s\n\n", cfg.Rules().Fingerprint())

	start := time.Now()
	var sentences, tokens int
	for i := 0; i < *rounds; i++ {
		result := tok.Tokenize(text)
		sentences, tokens = result.Len(), result.TokenCount()
	}
	raw := time.Since(start)

	cached := cache.NewCachedTokenizer(tok, 1)
	start = time.Now()
	for i := 0; i < *rounds; i++ {
		cached.Tokenize(text)
	}
	warm := time.Since(start)

	mb := float64(len(text)*(*rounds)) / (1 << 20)
	fmt.Printf("Sentences: %d\n", sentences)
	fmt.Printf("Tokens:    %d\n", tokens)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Raw:    %v total, %.2f MB/s, %.0f sentences/s\n",
		raw, mb/raw.Seconds(), float64(sentences*(*rounds))/raw.Seconds())
	fmt.Printf("Cached: %v total, %.2f MB/s\n", warm, mb/warm.Seconds())
}
