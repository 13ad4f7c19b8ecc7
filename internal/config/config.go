package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
)

const (
	DefaultCaloriePrompt = "Estimate the total calories in this food. Also list the food items detected."
	DefaultCostPrompt    = "Estimate how much this food would cost if ordered in a typical restaurant. Give price in USD."
)

type Config struct {
	Address          string        `env:"RUN_ADDRESS"`
	DatabaseURI      string        `env:"DATABASE_URI"`
	SQLitePath       string        `env:"SQLITE_PATH"`
	APIKey           string        `env:"GOOGLE_API_KEY"`
	Model            string        `env:"GENAI_MODEL"`
	GenAIBaseURL     string        `env:"GENAI_BASE_URL"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT"`
	InferenceRPS     int           `env:"INFERENCE_RPS"`
	AdminSecret      string        `env:"ADMIN_SECRET"`
	RedisAddr        string        `env:"REDIS_ADDR"`
	CacheTTL         time.Duration `env:"CACHE_TTL"`
	CardLuhnCheck    bool          `env:"CARD_LUHN_CHECK"`
	LogFile          string        `env:"LOG_FILE"`
	BodyLimit        string        `env:"BODY_LIMIT"`
	CaloriePrompt    string        `env:"CALORIE_PROMPT"`
	CostPrompt       string        `env:"COST_PROMPT"`
}

// NewConfig reads command line flags and lets environment variables override them.
func NewConfig() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (*Config, error) {
	config := &Config{}

	fs.StringVar(&config.Address, "a", "localhost:8080", "Address and port of the web server")
	fs.StringVar(&config.DatabaseURI, "d", "", "Postgres URL, SQLite is used when empty")
	fs.StringVar(&config.SQLitePath, "f", "orders.db", "Path of the SQLite orders database")
	fs.StringVar(&config.APIKey, "k", "", "Google GenAI API key")
	fs.StringVar(&config.Model, "m", "gemini-2.5-flash", "Model used for image analysis")
	fs.StringVar(&config.GenAIBaseURL, "u", "", "Override of the GenAI endpoint")
	fs.DurationVar(&config.InferenceTimeout, "t", 60*time.Second, "Timeout of a single inference call")
	fs.IntVar(&config.InferenceRPS, "r", 5, "Inference calls per second, 0 disables the limit")
	fs.StringVar(&config.AdminSecret, "s", "", "Admin secret, the admin view is disabled when empty")
	fs.StringVar(&config.RedisAddr, "c", "", "Redis address for the estimate cache, disabled when empty")
	fs.DurationVar(&config.CacheTTL, "ttl", 24*time.Hour, "Lifetime of cached estimates")
	fs.BoolVar(&config.CardLuhnCheck, "luhn", false, "Require card numbers to pass the Luhn checksum")
	fs.StringVar(&config.LogFile, "l", "app.log", "Log file, written in addition to stderr")
	fs.StringVar(&config.BodyLimit, "b", "10M", "Maximum request body size")
	fs.StringVar(&config.CaloriePrompt, "calorie-prompt", DefaultCaloriePrompt, "Prompt of the calorie estimate")
	fs.StringVar(&config.CostPrompt, "cost-prompt", DefaultCostPrompt, "Prompt of the cost estimate")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

// Validate reports configuration that must stop the service from starting.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return apperrors.ErrMissingAPIKey
	}
	return nil
}
