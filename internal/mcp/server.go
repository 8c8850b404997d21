package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-german-vocab/internal/app"
	"github.com/a3tai/mcp-german-vocab/internal/config"
	"github.com/a3tai/mcp-german-vocab/internal/pdf"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/export"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/pipeline"
)

// Tool names
const (
	ToolExtract       = "vocab_extract"
	ToolValidateFile  = "vocab_validate_file"
	ToolListDocuments = "vocab_list_documents"
	ToolServerInfo    = "vocab_server_info"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	app       *app.App
	search    *pdf.Search
	mcpServer *server.MCPServer
	logger    *slog.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, a *app.App, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if a == nil {
		return nil, fmt.Errorf("app cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:    cfg,
		app:       a,
		search:    pdf.NewSearch(cfg.MaxFileSize),
		mcpServer: mcpServer,
		logger:    logger.With("component", "mcp"),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		ToolExtract,
		mcp.WithDescription("Extract the most frequent German study words from a PDF or page image, "+
			"with translation, synonyms, CEFR level and an example sentence"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the document, relative to the document directory"),
		),
		mcp.WithNumber("start_page",
			mcp.Description(fmt.Sprintf("First page to scan (default %d)", s.config.StartPage)),
		),
		mcp.WithNumber("page_count",
			mcp.Description(fmt.Sprintf("Number of pages to scan (default %d)", s.config.PageCount)),
		),
		mcp.WithNumber("min_length",
			mcp.Description(fmt.Sprintf("Minimum word length, %d-%d (default %d)",
				config.MinWordLength, config.MaxWordLength, s.config.MinLength)),
		),
		mcp.WithNumber("max_words",
			mcp.Description(fmt.Sprintf("Number of words in the list (default %d)", s.config.MaxWords)),
		),
		mcp.WithString("format",
			mcp.Description("Output format: table (default), csv, flashcards or json"),
			mcp.Enum("table", "csv", "flashcards", "json"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtract)

	validateTool := mcp.NewTool(
		ToolValidateFile,
		mcp.WithDescription("Check whether a file is a readable PDF or page image"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the document, relative to the document directory"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateFile)

	listTool := mcp.NewTool(
		ToolListDocuments,
		mcp.WithDescription("List the PDFs and page images in the document directory with optional fuzzy search"),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching on file names"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to list (default: all)"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleListDocuments)

	infoTool := mcp.NewTool(
		ToolServerInfo,
		mcp.WithDescription("Get server configuration, lookup services, defaults and usage guidance"),
	)
	s.mcpServer.AddTool(infoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	format := export.FormatTable
	if f, ok := args["format"].(string); ok && f != "" {
		if format, err = export.ParseFormat(f); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	doc, err := s.app.LoadDocument(path)
	if err != nil {
		return mcp.NewToolResultError(pipeline.UserMessage(err)), nil
	}

	req := s.app.Request(doc)
	for _, p := range []struct {
		name   string
		target *int
	}{
		{"start_page", &req.Window.Start},
		{"page_count", &req.Window.Count},
		{"min_length", &req.MinLength},
		{"max_words", &req.MaxWords},
	} {
		v, ok, err := intArg(args, p.name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if ok {
			*p.target = v
		}
	}
	if req.MinLength < config.MinWordLength || req.MinLength > config.MaxWordLength {
		return mcp.NewToolResultError(fmt.Sprintf("min_length must be between %d and %d",
			config.MinWordLength, config.MaxWordLength)), nil
	}

	result, err := s.app.Service.Extract(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(pipeline.UserMessage(err)), nil
	}

	text, err := s.formatExtractResult(result, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.app.Paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.app.Validator.ValidateFile(resolved)

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Document %s is valid and readable (%s", result.Path, result.MIMEType)
		if result.Pages > 0 {
			responseText += fmt.Sprintf(", %d page(s)", result.Pages)
		}
		responseText += ")"
	} else {
		responseText = fmt.Sprintf("Validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}
	limit, _, err := intArg(args, "limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := s.search.SearchDirectory(s.app.Paths.Root(), query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(files) == 0 {
		responseText := fmt.Sprintf("No documents found in directory: %s", s.app.Paths.Root())
		if query != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", query)
		}
		return mcp.NewToolResultText(responseText), nil
	}

	return mcp.NewToolResultText(s.formatDocumentList(files, query)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.search.SearchDirectory(s.app.Paths.Root(), "", serverInfoFileLimit+1)
	if err != nil {
		s.logger.WarnContext(ctx, "listing documents failed", "error", err)
	}
	return mcp.NewToolResultText(s.formatServerInfo(files)), nil
}

// Formatting methods
func (s *Server) formatExtractResult(result *pipeline.Result, format export.Format) (string, error) {
	if format == export.FormatJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
		return string(data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Vocabulary for: %s\n", result.Document)
	fmt.Fprintf(&b, "Pages: %d visited of %d (%d text layer, %d OCR)\n",
		result.Pages.Visited, result.Pages.Total, result.Pages.Native, result.Pages.OCR)
	fmt.Fprintf(&b, "Unique words found: %d, listed: %d\n", result.UniqueWords, len(result.Words))
	if result.Language != "" {
		fmt.Fprintf(&b, "Detected language: %s\n", result.Language)
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- [%s] %s\n", w.Code, w.Message)
		}
	}
	for _, pe := range result.PageErrors {
		fmt.Fprintf(&b, "- %s\n", pe.Error())
	}

	if len(result.Words) == 0 {
		if result.Preview != "" {
			fmt.Fprintf(&b, "\nExtracted text (preview):\n%s\n", result.Preview)
		}
		return b.String(), nil
	}

	b.WriteString("\n")
	if err := export.Write(&b, format, result.Words, export.Options{}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) formatDocumentList(files []pdf.FileInfo, query string) string {
	text := fmt.Sprintf("Found %d document(s) in directory: %s\n", len(files), s.app.Paths.Root())
	if query != "" {
		text += fmt.Sprintf("Search query: %s\n", query)
	}
	text += "\nFiles:\n"

	for i, file := range files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Type: %s\n", file.MIMEType)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(files)-1 {
			text += "\n"
		}
	}

	return text
}

// Run starts the MCP server in the configured mode and returns when ctx is
// canceled or the client closes stdin
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(ctx context.Context) error {
	s.logger.Debug("starting MCP server in stdio mode", "directory", s.config.DocDirectory)

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	if err := stdio.Listen(ctx, s.stdin, s.stdout); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	s.logger.Warn("server mode is not supported by the transport, falling back to stdio mode")
	return s.runStdioMode(ctx)
}

// intArg reads a whole number argument. JSON numbers arrive as float64;
// numeric strings are accepted too.
func intArg(args map[string]any, name string) (int, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, fmt.Errorf("%s must be a whole number, got %v", name, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, fmt.Errorf("%s must be a number, got %q", name, v)
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
}
