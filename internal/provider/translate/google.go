package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a3tai/mcp-german-vocab/internal/provider"
)

// DefaultGoogleURL is the public web translation endpoint
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// Google translates words through the public Google Translate endpoint
type Google struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewGoogle creates a translator using the default endpoint
func NewGoogle(logger *slog.Logger) *Google {
	return NewGoogleWithURL(DefaultGoogleURL, logger)
}

// NewGoogleWithURL creates a translator with a custom endpoint (for testing)
func NewGoogleWithURL(baseURL string, logger *slog.Logger) *Google {
	if logger == nil {
		logger = slog.Default()
	}
	return &Google{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: provider.DefaultHTTPTimeout},
		log:        logger.With("adapter", "google-translate"),
	}
}

// Translate returns the translation of word. An empty string with a nil error
// means the service had nothing to offer.
func (g *Google) Translate(ctx context.Context, word, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", word)
	reqURL := g.baseURL + "?" + params.Encode()

	g.log.DebugContext(ctx, "translate request", slog.String("word", word), slog.String("target", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("translate: create request: %w", err)
	}

	resp, err := provider.DoWithRetry(ctx, g.httpClient, req, g.log, word)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	text, err := parseGoogleResponse(body)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	g.log.DebugContext(ctx, "translate response", slog.String("word", word), slog.String("translation", text))
	return text, nil
}

// parseGoogleResponse extracts the translated segments from the nested-array
// response, e.g. [[["дом","Haus",null,null,10]],null,"de"]
func parseGoogleResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	if len(root) == 0 {
		return "", nil
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		// null when there is no translation
		return "", nil
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	return strings.TrimSpace(b.String()), nil
}
