package corpus

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
)

// Corpus is a frequency corpus that holds resources
type Corpus interface {
	enrich.FrequencyCorpus
	io.Closer
}

// Open loads the corpus at path: ".tsv" and ".txt" files are read into
// memory, anything else is opened as a SQLite database
func Open(ctx context.Context, path, lang string) (Corpus, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return LoadMemoryFile(path, lang)
	default:
		return OpenSQLite(ctx, path)
	}
}
