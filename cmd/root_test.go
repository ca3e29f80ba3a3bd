package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/ai/gemini"
	"github.com/spigell/career-assistant/internal/market"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig(newTestViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Output.Format != "text" {
		t.Fatalf("expected text format, got %q", config.Output.Format)
	}
	if config.AI.Gemini.Model != gemini.DefaultModel {
		t.Fatalf("expected default model, got %q", config.AI.Gemini.Model)
	}
	if config.AI.Gemini.MaxRetries != gemini.DefaultMaxRetries {
		t.Fatalf("expected %d retries, got %d", gemini.DefaultMaxRetries, config.AI.Gemini.MaxRetries)
	}
	if config.Market.Location != market.DefaultLocation {
		t.Fatalf("expected default location, got %q", config.Market.Location)
	}
	if config.Market.Timeout != market.DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", config.Market.Timeout)
	}
}

func TestGetConfigNormalizesFormat(t *testing.T) {
	v := newTestViper()
	v.Set("output.format", " JSON ")

	config, err := getConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Output.Format != "json" {
		t.Fatalf("expected json format, got %q", config.Output.Format)
	}
}

func TestGetConfigValidation(t *testing.T) {
	cases := map[string]struct {
		key   string
		value any
	}{
		"unknown format":   {key: "output.format", value: "xml"},
		"long location":    {key: "market.location", value: "usa"},
		"zero retries":     {key: "ai.gemini.max-retries", value: 0},
		"hot temperature":  {key: "ai.gemini.temperature", value: 3.5},
		"bad base url":     {key: "market.adzuna.base-url", value: "not a url"},
		"huge page size":   {key: "market.results-per-page", value: 500},
		"unknown provider": {key: "ai.provider", value: "openai"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tc.key, tc.value)

			if _, err := getConfig(v); err == nil {
				t.Fatalf("expected validation error for %s=%v", tc.key, tc.value)
			}
		})
	}
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
market:
  location: gb
  timeout: 5s
ai:
  gemini:
    model: gemini-2.5-pro
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	v := newTestViper()
	if err := readConfig(v, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	config, err := getConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Market.Location != "gb" {
		t.Fatalf("expected gb, got %q", config.Market.Location)
	}
	if config.Market.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", config.Market.Timeout)
	}
	if config.AI.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("expected model from file, got %q", config.AI.Gemini.Model)
	}
}

func TestReadConfigExplicitFileMissing(t *testing.T) {
	v := newTestViper()
	if err := readConfig(v, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CAREER_ASSISTANT_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CAREER_ASSISTANT_TEST_VALUE") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("CAREER_ASSISTANT_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestLoadCredentials(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "gemini.key")
	if err := os.WriteFile(keyFile, []byte("file-key\n"), 0o600); err != nil {
		t.Fatalf("writing key: %v", err)
	}

	config, err := getConfig(newTestViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	config.AI.Gemini.APIKey = "inline-key"
	config.AI.Gemini.APIKeyFile = keyFile
	config.Company.NewsAPI.APIKey = "your_news_api_key_here"
	config.Market.Adzuna.AppID = " app "

	creds, err := loadCredentials(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if creds.gemini != "file-key" {
		t.Fatalf("expected file to take precedence, got %q", creds.gemini)
	}
	if creds.newsAPI != "" {
		t.Fatalf("expected placeholder to be ignored, got %q", creds.newsAPI)
	}
	if creds.adzunaAppID != "app" {
		t.Fatalf("expected trimmed app id, got %q", creds.adzunaAppID)
	}
	if creds.adzunaAPIKey != "" {
		t.Fatalf("expected empty adzuna key, got %q", creds.adzunaAPIKey)
	}
}

func TestLoadCredentialsUnreadableFile(t *testing.T) {
	config, err := getConfig(newTestViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	config.Company.AlphaVantage.APIKeyFile = filepath.Join(t.TempDir(), "missing")

	if _, err := loadCredentials(config); err == nil {
		t.Fatal("expected error for unreadable key file")
	}
}

func TestNewAssistantWithoutCredentials(t *testing.T) {
	config, err := getConfig(newTestViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assistant, err := newAssistant(t.Context(), config, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := assistant.AnalyzeResume(t.Context(), sampleResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Analysis.Degraded {
		t.Fatal("expected analysis to degrade without a generator")
	}
	if !res.Skills.Contains("Python") {
		t.Fatalf("expected Python among sample resume skills, got %v", res.Skills)
	}
}

func TestCleanJob(t *testing.T) {
	got := cleanJob("<p>We need <b>Go</b> engineers</p><ul><li>Docker</li></ul>")
	if strings.Contains(got, "<") {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}
	if !strings.Contains(got, "**Go**") || !strings.Contains(got, "Docker") {
		t.Fatalf("unexpected cleaned text %q", got)
	}

	if got := cleanJob("  plain text  "); got != "plain text" {
		t.Fatalf("expected trimmed plain text, got %q", got)
	}
}

func TestJobFromInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(path, []byte("Senior Go developer\nKubernetes"), 0o600); err != nil {
		t.Fatalf("writing job: %v", err)
	}

	got, err := jobFromInput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Kubernetes") {
		t.Fatalf("expected file contents, got %q", got)
	}

	got, err = jobFromInput("Data scientist with SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Data scientist with SQL" {
		t.Fatalf("expected text to be used as is, got %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	var out strings.Builder
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "career-assistant version: unknown") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
