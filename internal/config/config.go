package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Record store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSupabase = "supabase"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// LLM providers.
const (
	LLMProviderOpenAI    = "openai"
	LLMProviderAnthropic = "anthropic"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Store        StoreConfig
	Postgres     PostgresConfig
	Supabase     SupabaseConfig
	Redis        RedisConfig
	LLM          LLMConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig selects the ticket record store.
type StoreConfig struct {
	Driver string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// SupabaseConfig holds the PostgREST endpoint and service key.
type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
	TimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LLMConfig configures the classification provider.
type LLMConfig struct {
	Mock            bool
	Provider        string
	Model           string
	BaseURL         string
	Temperature     float64
	MaxTokens       int
	TimeoutSeconds  int
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines service token parameters. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	env := getEnv("APP_ENV", getEnv("ENVIRONMENT", "development"))
	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-copilot"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", false),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Supabase: SupabaseConfig{
			URL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
			TimeoutSeconds: getEnvAsInt("SUPABASE_TIMEOUT_SECONDS", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		LLM: LLMConfig{
			Mock:            getEnvAsBool("MOCK_LLM", false),
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderOpenAI)),
			Model:           os.Getenv("LLM_MODEL"),
			BaseURL:         os.Getenv("LLM_BASE_URL"),
			Temperature:     temperature,
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 512),
			TimeoutSeconds:  getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", defaultLevel),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Validate reports every setting that prevents the selected modes from starting.
func (c *Config) Validate() []string {
	var problems []string

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			problems = append(problems, "POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case StoreDriverSupabase:
		if c.Supabase.URL == "" {
			problems = append(problems, "SUPABASE_URL is required when STORE_DRIVER=supabase")
		}
		if c.Supabase.ServiceRoleKey == "" {
			problems = append(problems, "SUPABASE_SERVICE_ROLE_KEY is required when STORE_DRIVER=supabase")
		}
	case StoreDriverRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "REDIS_ADDR is required when STORE_DRIVER=redis")
		}
	case StoreDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if !c.LLM.Mock {
		switch c.LLM.Provider {
		case LLMProviderOpenAI:
			if c.LLM.OpenAIAPIKey == "" {
				problems = append(problems, "OPENAI_API_KEY is required when MOCK_LLM=false and LLM_PROVIDER=openai")
			}
		case LLMProviderAnthropic:
			if c.LLM.AnthropicAPIKey == "" {
				problems = append(problems, "ANTHROPIC_API_KEY is required when MOCK_LLM=false and LLM_PROVIDER=anthropic")
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown LLM_PROVIDER %q", c.LLM.Provider))
		}
		if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
			problems = append(problems, "LLM_TEMPERATURE must be between 0 and 2")
		}
	}

	return problems
}

// IsDevelopment reports whether verbose error messages may be returned to clients.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call model timeout.
func (l LLMConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
