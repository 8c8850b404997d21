package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/a3tai/mcp-german-vocab/internal/app"
	"github.com/a3tai/mcp-german-vocab/internal/config"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/export"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/pipeline"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var version = "dev" // This will be set by build flags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run extracts the vocabulary of the document named by the first positional
// argument and writes it to stdout or --output. Warnings go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	loader := config.NewLoader("vocab-extract")
	loader.Flags.StringP("format", "f", string(export.FormatTable), "Output format: table, csv, flashcards or json")
	loader.Flags.StringP("output", "o", "", "Write the list to this file instead of stdout")
	loader.Flags.Bool("bom", false, "Prefix CSV output with a UTF-8 byte order mark")
	loader.Flags.SetOutput(stderr)

	cfg, err := loader.Load(args)
	if errors.Is(err, config.ErrVersionRequested) {
		fmt.Fprintf(stdout, "vocab-extract %s\n", version)
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if loader.Flags.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one document path required\n\n")
		loader.Flags.Usage()
		return exitUsage
	}

	v := loader.Viper()
	format, err := export.ParseFormat(v.GetString("format"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := cfg.NewLogger(stderr)
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer a.Close()

	doc, err := a.LoadDocument(loader.Flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", pipeline.UserMessage(err))
		return exitError
	}

	result, err := a.Service.Extract(ctx, a.Request(doc))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", pipeline.UserMessage(err))
		return exitError
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w.Message)
	}
	for _, pe := range result.PageErrors {
		fmt.Fprintf(stderr, "warning: %s\n", pe.Error())
	}

	out := stdout
	if path := v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, format, result.Words, export.Options{BOM: v.GetBool("bom")}); err != nil {
		fmt.Fprintf(stderr, "Error: write %s: %v\n", format, err)
		return exitError
	}
	return exitOK
}
