package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenSecret  string
	AssistURL    string
	AssistAPIKey string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballotbox", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Identity token HMAC secret (prefer env)")

	// Generative-text assistant (optional)
	fs.StringVar(&cfg.AssistURL, "assist-url", "", "Assistant service base URL")
	fs.StringVar(&cfg.AssistAPIKey, "assist-key", "", "Assistant service API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	// Assistant is optional; endpoints report 503 when unset
	if cfg.AssistURL == "" {
		cfg.AssistURL = os.Getenv("ASSIST_URL")
	}
	if cfg.AssistAPIKey == "" {
		cfg.AssistAPIKey = os.Getenv("ASSIST_API_KEY")
	}

	return cfg, nil
}
