package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/career-assistant/internal/ai/gemini"
	"github.com/spigell/career-assistant/internal/company"
	"github.com/spigell/career-assistant/internal/market"
	"github.com/spigell/career-assistant/internal/render"
)

const (
	app = "career-assistant"
)

type Config struct {
	Output  *OutputConfig  `mapstructure:"output" validate:"required"`
	AI      *AIConfig      `mapstructure:"ai" validate:"required"`
	Market  *MarketConfig  `mapstructure:"market" validate:"required"`
	Company *CompanyConfig `mapstructure:"company" validate:"required"`
}

type OutputConfig struct {
	Format  string `mapstructure:"format" validate:"oneof=text json"`
	NoColor bool   `mapstructure:"no-color"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini       *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"api-key" json:"-"`
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model" validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxRetries  int     `mapstructure:"max-retries" validate:"gte=1,lte=10"`
}

type MarketConfig struct {
	Location       string        `mapstructure:"location" validate:"len=2"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gte=0"`
	ResultsPerPage int           `mapstructure:"results-per-page" validate:"gte=1,lte=50"`
	Adzuna         *AdzunaConfig `mapstructure:"adzuna" validate:"required"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id" json:"-"`
	AppIDFile  string `mapstructure:"app-id-file"`
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
}

type CompanyConfig struct {
	Timeout      time.Duration      `mapstructure:"timeout" validate:"gte=0"`
	NewsAPI      *ProviderKeyConfig `mapstructure:"newsapi" validate:"required"`
	AlphaVantage *ProviderKeyConfig `mapstructure:"alphavantage" validate:"required"`
	SerpAPI      *ProviderKeyConfig `mapstructure:"serpapi" validate:"required"`
}

type ProviderKeyConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
}

// envBindings maps configuration keys to the environment variables that can set them.
var envBindings = map[string]string{
	"ai.gemini.api-key":                 "GOOGLE_API_KEY",
	"ai.gemini.api-key-file":            "GOOGLE_API_KEY_FILE",
	"market.adzuna.app-id":              "ADZUNA_APP_ID",
	"market.adzuna.app-id-file":         "ADZUNA_APP_ID_FILE",
	"market.adzuna.api-key":             "ADZUNA_API_KEY",
	"market.adzuna.api-key-file":        "ADZUNA_API_KEY_FILE",
	"company.newsapi.api-key":           "NEWS_API_KEY",
	"company.newsapi.api-key-file":      "NEWS_API_KEY_FILE",
	"company.alphavantage.api-key":      "ALPHA_VANTAGE_API_KEY",
	"company.alphavantage.api-key-file": "ALPHA_VANTAGE_API_KEY_FILE",
	"company.serpapi.api-key":           "SERP_API_KEY",
	"company.serpapi.api-key-file":      "SERP_API_KEY_FILE",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-assistant analyzes resumes, matches them to jobs and prepares you for interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("format", render.FormatText, "report format: text or json")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output.no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", render.FormatText)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
	v.SetDefault("ai.gemini.temperature", gemini.DefaultTemperature)
	v.SetDefault("ai.gemini.max-retries", gemini.DefaultMaxRetries)
	v.SetDefault("market.location", market.DefaultLocation)
	v.SetDefault("market.timeout", market.DefaultTimeout)
	v.SetDefault("market.results-per-page", 20)
	v.SetDefault("market.adzuna.base-url", "")
	v.SetDefault("company.timeout", company.DefaultTimeout)
	v.SetDefault("company.newsapi.base-url", "")
	v.SetDefault("company.alphavantage.base-url", "")
	v.SetDefault("company.serpapi.base-url", "")
}

func initConfig() {
	// Nothing to configure for printing the version.
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := loadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// loadDotEnv exports variables from path. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// readConfig reads the explicit config file, or career-assistant.yaml from the current
// directory when it exists. Keys may come from the environment alone.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		// An explicitly requested file must exist and parse.
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
