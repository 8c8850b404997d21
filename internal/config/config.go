package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/mcp-german-vocab/internal/provider/synonym"
	"github.com/a3tai/mcp-german-vocab/internal/provider/translate"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultLogLevel        = "info"
	DefaultMaxFileSize     = 100 * 1024 * 1024 // 100MB
	DefaultMinLength       = 5
	DefaultMaxWords        = 50
	DefaultStartPage       = 1
	DefaultPageCount       = 20
	DefaultNativeThreshold = 50
	DefaultOCRLanguage     = "deu"
	DefaultSourceLang      = "de"
	DefaultTargetLang      = "ru"
	DefaultLookupTimeout   = 3 * time.Second
	DefaultContextLength   = 150
	DefaultWorkers         = 1
	DefaultCacheSize       = 10000

	// Word length limits accepted for the filter
	MinWordLength = 3
	MaxWordLength = 12

	// MaxWorkers bounds concurrent lookups against the public services
	MaxWorkers = 16

	// Directory permissions
	DefaultDirPerm = 0o750

	// EnvPrefix prefixes every environment variable, e.g. VOCAB_MIN_LENGTH
	EnvPrefix = "VOCAB"
)

// ErrVersionRequested is returned when --version appears on the command line
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the vocabulary extractor
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"

	// Document access
	DocDirectory string
	MaxFileSize  int64 // Maximum document size in bytes

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	ConfigFile string

	// Extraction defaults, overridable per request
	MinLength int
	MaxWords  int
	StartPage int
	PageCount int

	// Acquisition
	NativeThreshold int // meaningful characters a native page needs before OCR is skipped
	OCRLanguage     string
	TesseractPath   string

	// Lookups; an empty URL disables the service
	TranslateURL  string
	SourceLang    string
	TargetLang    string
	SynonymURL    string
	CorpusPath    string
	LookupTimeout time.Duration
	Workers       int
	CacheSize     int // 0 keeps every lookup for the whole session

	ContextLength int
	LevelTable    string
	StopWords     []string

	// Levels is LevelTable parsed by Validate
	Levels enrich.LevelTable
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio,
		DocDirectory:    currentDir,
		MaxFileSize:     DefaultMaxFileSize,
		Version:         "1.0.0",
		ServerName:      "mcp-german-vocab",
		LogLevel:        DefaultLogLevel,
		MinLength:       DefaultMinLength,
		MaxWords:        DefaultMaxWords,
		StartPage:       DefaultStartPage,
		PageCount:       DefaultPageCount,
		NativeThreshold: DefaultNativeThreshold,
		OCRLanguage:     DefaultOCRLanguage,
		TranslateURL:    translate.DefaultGoogleURL,
		SourceLang:      DefaultSourceLang,
		TargetLang:      DefaultTargetLang,
		SynonymURL:      synonym.DefaultOpenThesaurusURL,
		LookupTimeout:   DefaultLookupTimeout,
		Workers:         DefaultWorkers,
		CacheSize:       DefaultCacheSize,
		ContextLength:   DefaultContextLength,
		LevelTable:      enrich.DefaultLevelTable().String(),
		Levels:          enrich.DefaultLevelTable(),
	}
}

// Loader reads configuration from flags, environment variables and an
// optional config file, in increasing order of precedence: file, env, flags.
// Binaries may register extra flags on Flags before calling Load.
type Loader struct {
	Flags *pflag.FlagSet
	name  string
	v     *viper.Viper
}

// NewLoader creates a Loader with every common flag registered
func NewLoader(name string) *Loader {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	defineCommandLineFlags(fs, cfg)

	l := &Loader{Flags: fs, name: name, v: viper.New()}
	fs.Usage = l.usage
	return l
}

// LoadFromFlags parses the process arguments and returns a configuration
func LoadFromFlags() (*Config, error) {
	return NewLoader(filepath.Base(os.Args[0])).Load(os.Args[1:])
}

// Load parses args and returns the validated configuration
func (l *Loader) Load(args []string) (*Config, error) {
	if checkVersionFlag(args) {
		return nil, ErrVersionRequested
	}

	if err := l.Flags.Parse(args); err != nil {
		return nil, err
	}

	setupViperEnvironment(l.v)
	if err := l.v.BindPFlags(l.Flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if file := l.v.GetString("config"); file != "" {
		l.v.SetConfigFile(file)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	populateConfigFromViper(l.v, cfg)

	if cfg.DocDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocDirectory); err == nil {
			cfg.DocDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Viper exposes the merged settings, for flags a binary registered itself
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

func setupViperEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("config", "", "Config file (yaml, toml or json)")
	fs.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	fs.String("dir", cfg.DocDirectory, "Directory containing the documents")
	fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64("max-file-size", cfg.MaxFileSize, "Maximum document size in bytes")

	fs.Int("min-length", cfg.MinLength, "Minimum word length (3-12)")
	fs.Int("max-words", cfg.MaxWords, "Number of words in the list")
	fs.Int("start-page", cfg.StartPage, "First page to scan")
	fs.Int("page-count", cfg.PageCount, "Number of pages to scan")

	fs.Int("native-threshold", cfg.NativeThreshold, "Characters a page text layer needs before OCR is skipped")
	fs.String("ocr-lang", cfg.OCRLanguage, "Tesseract language (deu, eng)")
	fs.String("tesseract", cfg.TesseractPath, "Path to the tesseract binary (default: search PATH)")

	fs.String("translate-url", cfg.TranslateURL, "Translation endpoint; empty disables translation")
	fs.String("source-lang", cfg.SourceLang, "Document language")
	fs.String("target-lang", cfg.TargetLang, "Translation target language")
	fs.String("synonym-url", cfg.SynonymURL, "OpenThesaurus search endpoint; empty disables synonyms")
	fs.String("corpus", cfg.CorpusPath, "Frequency corpus: .tsv file or SQLite database; empty disables levels")
	fs.Duration("lookup-timeout", cfg.LookupTimeout, "Timeout of a single lookup")
	fs.Int("workers", cfg.Workers, "Words enriched concurrently")
	fs.Int("cache-size", cfg.CacheSize, "Lookups kept in the session cache (0 = unbounded)")

	fs.Int("context-length", cfg.ContextLength, "Maximum length of an example sentence")
	fs.String("levels", cfg.LevelTable, "Level thresholds on the Zipf scale, e.g. A1=5.5,A2=4.5")
	fs.StringSlice("stop-words", nil, "Additional words to ignore")
}

func (l *Loader) usage() {
	out := l.Flags.Output()
	fmt.Fprintf(out, "Usage of %s:\n", l.name)
	fmt.Fprintf(out, "\nGerman vocabulary extractor for PDF documents and page images\n\n")
	fmt.Fprintf(out, "Options:\n")
	l.Flags.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment Variables:\n")
	fmt.Fprintf(out, "  Every option can be set as %s_<OPTION>, e.g. %s_MIN_LENGTH=6 or %s_DIR=/path/to/docs\n",
		EnvPrefix, EnvPrefix, EnvPrefix)
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.ConfigFile = v.GetString("config")
	cfg.Mode = v.GetString("mode")
	cfg.DocDirectory = v.GetString("dir")
	cfg.LogLevel = v.GetString("log-level")
	cfg.MaxFileSize = v.GetInt64("max-file-size")

	cfg.MinLength = v.GetInt("min-length")
	cfg.MaxWords = v.GetInt("max-words")
	cfg.StartPage = v.GetInt("start-page")
	cfg.PageCount = v.GetInt("page-count")

	cfg.NativeThreshold = v.GetInt("native-threshold")
	cfg.OCRLanguage = v.GetString("ocr-lang")
	cfg.TesseractPath = v.GetString("tesseract")

	cfg.TranslateURL = v.GetString("translate-url")
	cfg.SourceLang = v.GetString("source-lang")
	cfg.TargetLang = v.GetString("target-lang")
	cfg.SynonymURL = v.GetString("synonym-url")
	cfg.CorpusPath = v.GetString("corpus")
	cfg.LookupTimeout = v.GetDuration("lookup-timeout")
	cfg.Workers = v.GetInt("workers")
	cfg.CacheSize = v.GetInt("cache-size")

	cfg.ContextLength = v.GetInt("context-length")
	cfg.LevelTable = v.GetString("levels")
	cfg.StopWords = v.GetStringSlice("stop-words")
}

// Validate checks if the configuration is valid. It also parses the level
// table into Levels.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.DocDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	// Create the document directory if it does not exist yet
	if _, err := os.Stat(c.DocDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create document directory %s: %w", c.DocDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.DocDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.MinLength < MinWordLength || c.MinLength > MaxWordLength {
		return fmt.Errorf("minimum word length must be between %d and %d, got %d",
			MinWordLength, MaxWordLength, c.MinLength)
	}
	if c.MaxWords < 1 {
		return fmt.Errorf("max words must be at least 1, got %d", c.MaxWords)
	}
	if c.StartPage < 1 {
		return fmt.Errorf("start page must be at least 1, got %d", c.StartPage)
	}
	if c.PageCount < 1 {
		return fmt.Errorf("page count must be at least 1, got %d", c.PageCount)
	}
	if c.NativeThreshold < 0 {
		return errors.New("native text threshold cannot be negative")
	}
	if c.OCRLanguage == "" {
		return errors.New("OCR language cannot be empty")
	}
	if c.SourceLang == "" || c.TargetLang == "" {
		return errors.New("source and target language cannot be empty")
	}
	if c.LookupTimeout <= 0 {
		return errors.New("lookup timeout must be positive")
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	if c.CacheSize < 0 {
		return errors.New("cache size cannot be negative")
	}
	if c.ContextLength < 10 {
		return fmt.Errorf("context length must be at least 10, got %d", c.ContextLength)
	}

	levels, err := enrich.ParseLevelTable(c.LevelTable)
	if err != nil {
		return fmt.Errorf("invalid level table: %w", err)
	}
	c.Levels = levels

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, DocDirectory: %s, LogLevel: %s, MaxFileSize: %d, "+
		"MinLength: %d, MaxWords: %d, Window: %d+%d, OCR: %s, Target: %s, Corpus: %q, Workers: %d}",
		c.Mode, c.DocDirectory, c.LogLevel, c.MaxFileSize,
		c.MinLength, c.MaxWords, c.StartPage, c.PageCount, c.OCRLanguage, c.TargetLang, c.CorpusPath, c.Workers)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
