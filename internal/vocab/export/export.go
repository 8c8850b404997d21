// Package export renders enriched word lists for spreadsheets, flashcard
// apps and terminals.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
)

// Format selects an output format
type Format string

const (
	FormatCSV        Format = "csv"
	FormatFlashcards Format = "flashcards"
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatCSV, FormatFlashcards, FormatTable, FormatJSON}
}

// ParseFormat converts a name such as "CSV" to a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (supported: csv, flashcards, table, json)", s)
}

// Options tunes rendering
type Options struct {
	// BOM prefixes CSV output with a UTF-8 byte order mark so spreadsheet
	// programs detect the encoding
	BOM bool
}

const utf8BOM = "\uFEFF"

// csvHeader is the column order of CSV exports
var csvHeader = []string{"word", "translation", "synonyms", "level", "context"}

// Write renders words in the given format
func Write(w io.Writer, format Format, words []enrich.EnrichedWord, opts Options) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, words, opts)
	case FormatFlashcards:
		return WriteFlashcards(w, words)
	case FormatTable:
		return WriteTable(w, words)
	case FormatJSON:
		return WriteJSON(w, words)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteCSV writes one row per word under a fixed header. Synonyms are joined
// with ", " into a single column.
func WriteCSV(w io.Writer, words []enrich.EnrichedWord, opts Options) error {
	if opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, word := range words {
		record := []string{
			word.Word,
			word.Translation,
			strings.Join(word.Synonyms, ", "),
			word.Level.String(),
			word.Context,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlashcards writes "word<TAB>translation (syn1, syn2) [level]" lines,
// the format flashcard apps import. The parenthesis block is left out when
// there are no synonyms.
func WriteFlashcards(w io.Writer, words []enrich.EnrichedWord) error {
	for _, word := range words {
		if _, err := io.WriteString(w, FlashcardLine(word)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FlashcardLine renders a single flashcard
func FlashcardLine(word enrich.EnrichedWord) string {
	var b strings.Builder
	b.WriteString(flatten(word.Word))
	b.WriteByte('\t')
	b.WriteString(flatten(word.Translation))
	if len(word.Synonyms) > 0 {
		b.WriteString(" (")
		b.WriteString(flatten(strings.Join(word.Synonyms, ", ")))
		b.WriteString(")")
	}
	b.WriteString(" [")
	b.WriteString(word.Level.String())
	b.WriteString("]")
	return b.String()
}

// WriteTable writes an aligned plain-text table
func WriteTable(w io.Writer, words []enrich.EnrichedWord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWORD\tCOUNT\tLEVEL\tTRANSLATION\tSYNONYMS")
	for i, word := range words {
		synonyms := "-"
		if len(word.Synonyms) > 0 {
			synonyms = strings.Join(word.Synonyms, ", ")
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1, flatten(word.Word), word.Count, word.Level, flatten(word.Translation), flatten(synonyms))
	}
	return tw.Flush()
}

// WriteJSON writes the words as an indented JSON array
func WriteJSON(w io.Writer, words []enrich.EnrichedWord) error {
	if words == nil {
		words = []enrich.EnrichedWord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(words)
}

// flatten keeps tab-separated formats intact
func flatten(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}
