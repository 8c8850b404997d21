package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader("vocab").Load([]string{"--dir", dir})
	require.NoError(t, err)

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, dir, cfg.DocDirectory)
	assert.Equal(t, DefaultMinLength, cfg.MinLength)
	assert.Equal(t, DefaultMaxWords, cfg.MaxWords)
	assert.Equal(t, DefaultLookupTimeout, cfg.LookupTimeout)
	assert.Empty(t, cfg.StopWords)
}

func TestLoad_Flags(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader("vocab").Load([]string{
		"--dir", dir,
		"--mode", "server",
		"--log-level", "debug",
		"--min-length", "7",
		"--max-words", "30",
		"--start-page", "3",
		"--page-count", "2",
		"--ocr-lang", "eng",
		"--target-lang", "en",
		"--lookup-timeout", "5s",
		"--workers", "4",
		"--stop-words", "Lektion,Übung",
		"--translate-url", "",
	})
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.True(t, cfg.IsDebug())
	assert.Equal(t, 7, cfg.MinLength)
	assert.Equal(t, 30, cfg.MaxWords)
	assert.Equal(t, 3, cfg.StartPage)
	assert.Equal(t, 2, cfg.PageCount)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, "en", cfg.TargetLang)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"Lektion", "Übung"}, cfg.StopWords)
	assert.Empty(t, cfg.TranslateURL)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VOCAB_MIN_LENGTH", "6")
	t.Setenv("VOCAB_TARGET_LANG", "uk")

	cfg, err := NewLoader("vocab").Load([]string{"--dir", t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MinLength)
	assert.Equal(t, "uk", cfg.TargetLang)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("VOCAB_MAX_WORDS", "10")

	cfg, err := NewLoader("vocab").Load([]string{"--dir", t.TempDir(), "--max-words", "20"})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MaxWords)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vocab.yaml")
	content := "max-words: 25\nlevels: A1=6,A2=5,B1=4\ncorpus: " + filepath.Join(dir, "freq.tsv") + "\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := NewLoader("vocab").Load([]string{"--dir", dir, "--config", file})
	require.NoError(t, err)

	assert.Equal(t, file, cfg.ConfigFile)
	assert.Equal(t, 25, cfg.MaxWords)
	assert.Len(t, cfg.Levels, 3)
	assert.Equal(t, filepath.Join(dir, "freq.tsv"), cfg.CorpusPath)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := NewLoader("vocab").Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid mode", []string{"--mode", "invalid"}},
		{"min length out of range", []string{"--min-length", "20"}},
		{"invalid log level", []string{"--log-level", "loud"}},
		{"unknown flag", []string{"--no-such-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader("vocab").Load(append([]string{"--dir", t.TempDir()}, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Version(t *testing.T) {
	for _, arg := range []string{"--version", "-version", "-v"} {
		_, err := NewLoader("vocab").Load([]string{arg})
		assert.ErrorIs(t, err, ErrVersionRequested, arg)
	}
}

func TestLoad_ExtraFlags(t *testing.T) {
	l := NewLoader("vocab-extract")
	l.Flags.String("format", "table", "Output format")

	_, err := l.Load([]string{"--dir", t.TempDir(), "--format", "csv"})
	require.NoError(t, err)
	assert.Equal(t, "csv", l.Viper().GetString("format"))
}

func TestLoader_UsageWritesToFlagOutput(t *testing.T) {
	var out bytes.Buffer
	l := NewLoader("vocab")
	l.Flags.SetOutput(&out)

	l.Flags.Usage()

	assert.Contains(t, out.String(), "Usage of vocab:")
	assert.Contains(t, out.String(), "--min-length")
	assert.Contains(t, out.String(), "VOCAB_MIN_LENGTH")
}
