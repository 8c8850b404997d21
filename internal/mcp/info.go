package mcp

import (
	"fmt"
	"strings"

	"github.com/a3tai/mcp-german-vocab/internal/config"
	"github.com/a3tai/mcp-german-vocab/internal/pdf"
)

// serverInfoFileLimit caps the documents listed by vocab_server_info
const serverInfoFileLimit = 10

// ToolInfo describes a tool for the usage guide
type ToolInfo struct {
	Name        string
	Description string
	Usage       string
	Parameters  string
}

// availableTools returns the usage guide for every registered tool
func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        ToolExtract,
			Description: "Builds a ranked study list from a PDF or page image",
			Usage:       "Run on a textbook chapter to get its most frequent words with translation, synonyms, level and example",
			Parameters:  "path (required), start_page, page_count, min_length, max_words, format",
		},
		{
			Name:        ToolValidateFile,
			Description: "Checks that a file can be read before extracting",
			Usage:       "Use when an extraction fails to find out whether the file itself is broken",
			Parameters:  "path (required)",
		},
		{
			Name:        ToolListDocuments,
			Description: "Lists the documents available in the document directory",
			Usage:       "Find the path of a chapter or scan by part of its name",
			Parameters:  "query, limit",
		},
		{
			Name:        ToolServerInfo,
			Description: "Shows this overview",
			Usage:       "Check which lookup services are enabled and what the defaults are",
			Parameters:  "none",
		},
	}
}

func enabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func (s *Server) formatServerInfo(files []pdf.FileInfo) string {
	cfg := s.config

	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s - Server Information\n", cfg.ServerName, cfg.Version)
	fmt.Fprintf(&b, "Document directory: %s\n", s.app.Paths.Root())
	fmt.Fprintf(&b, "Max file size: %d MB\n\n", cfg.MaxFileSize/(1024*1024))

	b.WriteString("Services:\n")
	fmt.Fprintf(&b, "  Text recognition (tesseract, %s): %s\n", cfg.OCRLanguage, enabled(s.app.OCRAvailable))
	fmt.Fprintf(&b, "  Translation (%s -> %s): %s\n", cfg.SourceLang, cfg.TargetLang, enabled(cfg.TranslateURL != ""))
	fmt.Fprintf(&b, "  Synonyms (OpenThesaurus): %s\n", enabled(cfg.SynonymURL != ""))
	if cfg.CorpusPath != "" {
		fmt.Fprintf(&b, "  Levels: frequency corpus %s, bands %s\n", cfg.CorpusPath, cfg.Levels)
	} else {
		b.WriteString("  Levels: disabled (no frequency corpus configured)\n")
	}
	stats := s.app.Cache.Stats()
	fmt.Fprintf(&b, "  Lookup cache: %d entries, hit rate %.0f%%\n\n", stats.Size, stats.HitRate)

	b.WriteString("Defaults:\n")
	fmt.Fprintf(&b, "  Pages %d to %d, minimum word length %d (%d-%d), %d words\n\n",
		cfg.StartPage, cfg.StartPage+cfg.PageCount-1, cfg.MinLength,
		config.MinWordLength, config.MaxWordLength, cfg.MaxWords)

	if len(files) > 0 {
		fmt.Fprintf(&b, "Directory contents:\n")
		for i, file := range files {
			if i >= serverInfoFileLimit {
				b.WriteString("   ... and more, use vocab_list_documents\n")
				break
			}
			fmt.Fprintf(&b, "   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Directory contents: no documents found\n\n")
	}

	b.WriteString("Available tools:\n")
	for _, tool := range availableTools() {
		fmt.Fprintf(&b, "\n- %s\n", tool.Name)
		fmt.Fprintf(&b, "  Description: %s\n", tool.Description)
		fmt.Fprintf(&b, "  Usage: %s\n", tool.Usage)
		fmt.Fprintf(&b, "  Parameters: %s\n", tool.Parameters)
	}

	b.WriteString("\nSupported documents: PDF, PNG, JPEG, GIF, TIFF, BMP, WebP\n")
	b.WriteString("\nScanned pages without a text layer are read with tesseract. If nothing is found, " +
		"export the page as a JPG or PNG image and extract from the image instead.\n")

	return b.String()
}
