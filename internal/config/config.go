package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Agent providers
const (
	ProviderLorem     = "lorem"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderEnvelope  = "envelope"
)

// History backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Debug flags
	Debug bool

	// Agent transport
	AgentProvider      string
	AnthropicAPIKey    string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	DefaultModel       string
	ImageModel         string
	AgentAPIURL        string
	AgentAPIKey        string
	ContentAgentID     string // overrides the roster's content agent id
	ImageAgentID       string // overrides the roster's image agent id
	AgentTimeout       time.Duration
	AgentRatePerMinute int // 0 = unlimited
	LoremDelay         time.Duration

	// History slot
	HistoryBackend string
	HistoryKey     string
	HistoryFile    string
	HistoryCap     int // 0 = unbounded
	DatabaseURL    string
	TablePrefix    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	StatusClearDelay time.Duration

	// Logging
	LogDir      string
	LogMaxFiles int

	// Empty disables bearer auth
	AuthJWKSURL  string
	AuthAudience string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",

		AgentProvider:      strings.ToLower(getEnv("AGENT_PROVIDER", ProviderLorem)),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		DefaultModel:       getEnv("DEFAULT_MODEL", ""),
		ImageModel:         getEnv("IMAGE_MODEL", ""),
		AgentAPIURL:        getEnv("AGENT_API_URL", ""),
		AgentAPIKey:        getEnv("AGENT_API_KEY", ""),
		ContentAgentID:     getEnv("CONTENT_AGENT_ID", ""),
		ImageAgentID:       getEnv("IMAGE_AGENT_ID", ""),
		AgentTimeout:       getEnvDuration("AGENT_TIMEOUT", 120*time.Second),
		AgentRatePerMinute: getEnvInt("AGENT_RATE_PER_MINUTE", 0),
		LoremDelay:         getEnvDuration("LOREM_DELAY", 1500*time.Millisecond),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", BackendFile)),
		HistoryKey:     getEnv("HISTORY_KEY", "mcc_history"),
		HistoryFile:    getEnv("HISTORY_FILE", "data/mcc_history.json"),
		HistoryCap:     getEnvInt("HISTORY_CAP", 0),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    getTablePrefix(env),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),

		StatusClearDelay: getEnvDuration("STATUS_CLEAR_DELAY", 4*time.Second),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		AuthJWKSURL:  getEnv("AUTH_JWKS_URL", ""),
		AuthAudience: getEnv("AUTH_AUDIENCE", ""),
	}
}

// Validate checks the settings the selected provider and backend need
func (c *Config) Validate() error {
	switch c.AgentProvider {
	case ProviderLorem:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for AGENT_PROVIDER=%s", c.AgentProvider)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for AGENT_PROVIDER=%s", c.AgentProvider)
		}
	case ProviderEnvelope:
		if c.AgentAPIURL == "" {
			return fmt.Errorf("AGENT_API_URL is required for AGENT_PROVIDER=%s", c.AgentProvider)
		}
	default:
		return fmt.Errorf("unknown AGENT_PROVIDER %q", c.AgentProvider)
	}

	switch c.HistoryBackend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for HISTORY_BACKEND=%s", c.HistoryBackend)
		}
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND %q", c.HistoryBackend)
	}

	if c.AgentRatePerMinute < 0 || c.HistoryCap < 0 {
		return fmt.Errorf("AGENT_RATE_PER_MINUTE and HISTORY_CAP must not be negative")
	}
	return nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when unset or not an integer
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s=%q, using %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("4s") or bare milliseconds ("4000")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	fmt.Fprintf(os.Stderr, "warning: invalid %s=%q, using %s\n", key, value, defaultValue)
	return defaultValue
}
