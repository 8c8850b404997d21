package synonym

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a3tai/mcp-german-vocab/internal/provider"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
)

// DefaultOpenThesaurusURL is the public German thesaurus search endpoint
const DefaultOpenThesaurusURL = "https://www.openthesaurus.de/synonyme/search"

// OpenThesaurus fetches German synonyms from openthesaurus.de
type OpenThesaurus struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewOpenThesaurus creates a client for the public endpoint
func NewOpenThesaurus(logger *slog.Logger) *OpenThesaurus {
	return NewOpenThesaurusWithURL(DefaultOpenThesaurusURL, logger)
}

// NewOpenThesaurusWithURL creates a client with a custom endpoint (for testing)
func NewOpenThesaurusWithURL(baseURL string, logger *slog.Logger) *OpenThesaurus {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenThesaurus{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: provider.DefaultHTTPTimeout},
		log:        logger.With("adapter", "openthesaurus"),
	}
}

type apiResponse struct {
	Synsets []apiSynset `json:"synsets"`
}

type apiSynset struct {
	ID    int       `json:"id"`
	Terms []apiTerm `json:"terms"`
}

type apiTerm struct {
	Term  string `json:"term"`
	Level string `json:"level,omitempty"`
}

// Synonyms returns the synonym groups for query. A 404 means no results; a
// 429 is reported as an error.
func (o *OpenThesaurus) Synonyms(ctx context.Context, query string) ([]enrich.SynSet, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "application/json")
	reqURL := o.baseURL + "?" + params.Encode()

	o.log.DebugContext(ctx, "openthesaurus request", slog.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("openthesaurus: create request: %w", err)
	}

	resp, err := provider.DoWithRetry(ctx, o.httpClient, req, o.log, query)
	if err != nil {
		return nil, fmt.Errorf("openthesaurus: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("openthesaurus: rate limited")
	default:
		return nil, fmt.Errorf("openthesaurus: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openthesaurus: read body: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openthesaurus: decode json: %w", err)
	}

	sets := make([]enrich.SynSet, 0, len(parsed.Synsets))
	for _, s := range parsed.Synsets {
		terms := make([]string, 0, len(s.Terms))
		for _, t := range s.Terms {
			if t.Term != "" {
				terms = append(terms, t.Term)
			}
		}
		if len(terms) > 0 {
			sets = append(sets, enrich.SynSet{Terms: terms})
		}
	}

	o.log.DebugContext(ctx, "openthesaurus response",
		slog.String("query", query),
		slog.Int("synsets", len(sets)),
	)
	return sets, nil
}
