package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/a3tai/mcp-german-vocab/internal/provider/corpus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run imports word<TAB>zipf lists into a SQLite frequency corpus. "-" reads
// from stdin.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("corpus-import", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	db := fs.String("db", "corpus.db", "SQLite database to create or update")
	lang := fs.String("lang", "de", "Language of the word lists")
	verbose := fs.BoolP("verbose", "v", false, "Log every imported file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: corpus-import [options] FILE.tsv [FILE.tsv ...]\n\n")
		fmt.Fprintf(stderr, "Each line holds a word and its Zipf frequency separated by a tab.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := corpus.OpenSQLite(ctx, *db)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	total := 0
	for _, path := range fs.Args() {
		n, err := importFile(ctx, store, path, *lang)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
			return 1
		}
		logger.Info("imported word list", "file", path, "words", n)
		total += n
	}

	count, err := store.Count(ctx, *lang)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Imported %d entries; %s now holds %d %s words\n", total, *db, count, *lang)
	return 0
}

func importFile(ctx context.Context, store *corpus.SQLite, path, lang string) (int, error) {
	if path == "-" {
		return store.Import(ctx, os.Stdin, lang)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return store.Import(ctx, f, lang)
}
